package services

import (
	"net/url"
	"strconv"
)

// View is the section of the admin panel being shown.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewProducts      View = "products"
	ViewCreateProduct View = "create-product"
	ViewEditProduct   View = "edit-product"
)

// ParseView maps a raw value onto a known view, defaulting to the dashboard.
func ParseView(raw string) View {
	switch v := View(raw); v {
	case ViewDashboard, ViewProducts, ViewCreateProduct, ViewEditProduct:
		return v
	default:
		return ViewDashboard
	}
}

// AdminState is the navigation state of the panel. It lives in the URL so a
// reload keeps the current view.
type AdminState struct {
	View        View   `json:"view"`
	EditingID   string `json:"editing_id,omitempty"`
	EditingName string `json:"editing_name,omitempty"`
	Refresh     int    `json:"refresh"`
}

// AdminStateFromQuery rebuilds the state from query parameters. An edit view
// without a product ID falls back to the product list.
func AdminStateFromQuery(values url.Values) AdminState {
	refresh, err := strconv.Atoi(values.Get("refresh"))
	if err != nil || refresh < 0 {
		refresh = 0
	}
	state := AdminState{
		View:    ParseView(values.Get("view")),
		Refresh: refresh,
	}
	if state.View == ViewEditProduct {
		state.EditingID = values.Get("id")
		state.EditingName = values.Get("name")
		if state.EditingID == "" {
			state.View = ViewProducts
			state.EditingName = ""
		}
	}
	return state
}

// Navigate switches to another top-level view and clears the edit target.
func (s AdminState) Navigate(v View) AdminState {
	return AdminState{View: v, Refresh: s.Refresh}
}

// Edit opens the form for an existing product.
func (s AdminState) Edit(id, name string) AdminState {
	return AdminState{View: ViewEditProduct, EditingID: id, EditingName: name, Refresh: s.Refresh}
}

// Complete returns to the product list after a successful save and bumps
// the refresh counter so the list refetches.
func (s AdminState) Complete() AdminState {
	return AdminState{View: ViewProducts, Refresh: s.Refresh + 1}
}

// Cancel returns to the product list without forcing a refetch.
func (s AdminState) Cancel() AdminState {
	return AdminState{View: ViewProducts, Refresh: s.Refresh}
}

// Query encodes the state as query parameters.
func (s AdminState) Query() url.Values {
	values := url.Values{}
	values.Set("view", string(s.View))
	if s.Refresh > 0 {
		values.Set("refresh", strconv.Itoa(s.Refresh))
	}
	if s.View == ViewEditProduct {
		values.Set("id", s.EditingID)
		if s.EditingName != "" {
			values.Set("name", s.EditingName)
		}
	}
	return values
}

// URL is the admin page address for the state.
func (s AdminState) URL(base string) string {
	return base + "?" + s.Query().Encode()
}
