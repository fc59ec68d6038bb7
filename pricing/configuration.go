package pricing

import (
	"bytes"
	"sort"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
)

// Configuration is the set of choices a shopper has made for one product. uuid.Nil means "nothing selected".
type Configuration struct {
	HeaterID       uuid.UUID
	HeaterChoices  map[string]string
	InstallationID uuid.UUID
	WoodTypeID     uuid.UUID
	addOns         map[uuid.UUID]struct{}
}

// NewConfiguration starts a configuration with the catalog's default installation and wood type.
func NewConfiguration(product *models.Product) Configuration {
	cfg := Configuration{}
	catalog := NewCatalog(product)
	if opt, ok := DefaultOption(catalog.Installation); ok {
		cfg.InstallationID = opt.ID
	}
	if opt, ok := DefaultOption(catalog.WoodTypes); ok {
		cfg.WoodTypeID = opt.ID
	}
	return cfg
}

// ConfigurationFromRequest rebuilds state from what the client sent. Heater choices are only kept
// when a heater is selected.
func ConfigurationFromRequest(req models.ConfigurationRequest) Configuration {
	cfg := Configuration{}
	if req.HeaterID != nil {
		cfg.SelectHeater(*req.HeaterID)
		for group, choice := range req.HeaterOptions {
			cfg.ChooseHeaterOption(group, choice)
		}
	}
	if req.InstallationID != nil {
		cfg.SelectInstallation(*req.InstallationID)
	}
	if req.WoodTypeID != nil {
		cfg.SelectWoodType(*req.WoodTypeID)
	}
	for _, id := range req.AddOnIDs {
		if !cfg.HasAddOn(id) {
			cfg.ToggleAddOn(id)
		}
	}
	return cfg
}

// SelectHeater switches the heater. Heater option choices always start over: a stone type picked
// for one heater never carries to another.
func (c *Configuration) SelectHeater(id uuid.UUID) {
	c.HeaterID = id
	c.HeaterChoices = nil
}

// ClearHeater deselects the heater together with its option choices.
func (c *Configuration) ClearHeater() {
	c.SelectHeater(uuid.Nil)
}

// ChooseHeaterOption records the chosen type for a heater option group. It is a no-op without a heater.
// An empty choice unsets the group.
func (c *Configuration) ChooseHeaterOption(group, choice string) {
	if c.HeaterID == uuid.Nil {
		return
	}
	if choice == "" {
		delete(c.HeaterChoices, group)
		return
	}
	if c.HeaterChoices == nil {
		c.HeaterChoices = make(map[string]string)
	}
	c.HeaterChoices[group] = choice
}

func (c *Configuration) SelectInstallation(id uuid.UUID) {
	c.InstallationID = id
}

func (c *Configuration) SelectWoodType(id uuid.UUID) {
	c.WoodTypeID = id
}

// ToggleAddOn selects the add-on, or removes it when already selected. It reports whether the
// add-on is selected afterwards.
func (c *Configuration) ToggleAddOn(id uuid.UUID) bool {
	if c.HasAddOn(id) {
		delete(c.addOns, id)
		return false
	}
	if c.addOns == nil {
		c.addOns = make(map[uuid.UUID]struct{})
	}
	c.addOns[id] = struct{}{}
	return true
}

func (c Configuration) HasAddOn(id uuid.UUID) bool {
	_, ok := c.addOns[id]
	return ok
}

// AddOnIDs returns the selected add-ons in a stable order.
func (c Configuration) AddOnIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.addOns))
	for id := range c.addOns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

// Clone returns a copy that shares no maps with c.
func (c Configuration) Clone() Configuration {
	out := c
	out.HeaterChoices = nil
	for k, v := range c.HeaterChoices {
		if out.HeaterChoices == nil {
			out.HeaterChoices = make(map[string]string, len(c.HeaterChoices))
		}
		out.HeaterChoices[k] = v
	}
	out.addOns = nil
	for id := range c.addOns {
		if out.addOns == nil {
			out.addOns = make(map[uuid.UUID]struct{}, len(c.addOns))
		}
		out.addOns[id] = struct{}{}
	}
	return out
}

// Request converts the state back to its wire form.
func (c Configuration) Request() models.ConfigurationRequest {
	req := models.ConfigurationRequest{AddOnIDs: c.AddOnIDs()}
	if c.HeaterID != uuid.Nil {
		id := c.HeaterID
		req.HeaterID = &id
		req.HeaterOptions = c.Clone().HeaterChoices
	}
	if c.InstallationID != uuid.Nil {
		id := c.InstallationID
		req.InstallationID = &id
	}
	if c.WoodTypeID != uuid.Nil {
		id := c.WoodTypeID
		req.WoodTypeID = &id
	}
	return req
}
