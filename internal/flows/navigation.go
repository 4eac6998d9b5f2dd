package flows

// Route names a destination view.
type Route string

const (
	RouteHome      Route = "home"
	RouteLogin     Route = "login"
	RouteResetForm Route = "reset-password"
	RouteListing   Route = "my-algorithms"
)

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(Route)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

type discard struct{}

func (discard) Navigate(Route) {}
