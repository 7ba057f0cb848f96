// Package web holds the shell shared by every view: navigation, the page
// envelope, alerts and the embedded HTML templates.
package web

// Views in navigation order.
const (
	ViewResume    = "resume"
	ViewInterview = "interview"
	ViewDashboard = "dashboard"
	ViewExport    = "export"
)

// DefaultPath is where "/" and unmatched paths land.
const DefaultPath = "/" + ViewResume

// NavItem is one entry of the top navigation bar.
type NavItem struct {
	View   string
	Label  string
	Path   string
	Active bool
}

var navOrder = []struct{ view, label string }{
	{ViewResume, "Resume"},
	{ViewInterview, "Interview"},
	{ViewDashboard, "Dashboard"},
	{ViewExport, "Export"},
}

// Nav returns the navigation bar with active marked.
func Nav(active string) []NavItem {
	items := make([]NavItem, 0, len(navOrder))
	for _, n := range navOrder {
		items = append(items, NavItem{
			View:   n.view,
			Label:  n.label,
			Path:   "/" + n.view,
			Active: n.view == active,
		})
	}
	return items
}

// IsView reports whether name is a routable view.
func IsView(name string) bool {
	for _, n := range navOrder {
		if n.view == name {
			return true
		}
	}
	return false
}

// Alert levels.
const (
	AlertError = "error"
	AlertInfo  = "info"
)

// Alert is a one-shot message shown on the next render of a view.
type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ErrorAlert builds an error alert.
func ErrorAlert(msg string) *Alert {
	return &Alert{Level: AlertError, Message: msg}
}

// InfoAlert builds an informational alert.
func InfoAlert(msg string) *Alert {
	return &Alert{Level: AlertInfo, Message: msg}
}

// Page is the envelope every view template renders.
type Page struct {
	Title      string
	View       string
	InstanceID string
	Nav        []NavItem
	Alert      *Alert
	Data       any
}

// NewPage builds the envelope for a mounted view instance.
func NewPage(view, title, instanceID string, alert *Alert, data any) Page {
	return Page{
		Title:      title,
		View:       view,
		InstanceID: instanceID,
		Nav:        Nav(view),
		Alert:      alert,
		Data:       data,
	}
}

// ActionPath builds "/{view}/{instanceID}/{action...}".
func ActionPath(view, instanceID string, action ...string) string {
	p := "/" + view + "/" + instanceID
	for _, a := range action {
		p += "/" + a
	}
	return p
}
