package session

// Route is a top-level destination of the client.
type Route string

const (
	RouteAuth       Route = "Auth"
	RouteOnboarding Route = "Onboarding"
	RouteMainApp    Route = "MainApp"
)

// ParamInitialTab selects the tab shown first when landing on MainApp.
const ParamInitialTab = "initialTab"

// Navigator receives routing decisions. It never reports back.
type Navigator interface {
	Navigate(route Route, params map[string]string)
}

type NavigatorFunc func(route Route, params map[string]string)

func (f NavigatorFunc) Navigate(route Route, params map[string]string) {
	f(route, params)
}
