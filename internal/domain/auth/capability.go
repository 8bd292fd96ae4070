package auth

// Route names a navigable screen of the terminal.
type Route string

const (
	RouteHome         Route = "home"
	RouteTables       Route = "tables"
	RouteOrder        Route = "order"
	RouteCatalogAdmin Route = "catalog"
	RouteTableAdmin   Route = "table-admin"
	RouteUsers        Route = "users"
	RouteExpenses     Route = "expenses"
	RouteReports      Route = "reports"
	RouteStartDay     Route = "start-day"
	RouteSystemClosed Route = "system-closed"
	RouteLogin        Route = "login"
)

// Capabilities describes what a role may reach and where it lands by default.
// All role-based navigation decisions flow through Resolve so the mapping
// lives in exactly one place.
type Capabilities struct {
	Routes  map[Route]bool
	Landing Route
	// ClosedDayRoute is where the operator is steered while the day is closed.
	ClosedDayRoute Route
}

// Allows reports whether the role may visit the given route.
func (c Capabilities) Allows(r Route) bool {
	return c.Routes[r]
}

// Resolve maps a role to its capabilities.
func Resolve(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			Routes: routeSet(
				RouteHome, RouteTables, RouteOrder,
				RouteCatalogAdmin, RouteTableAdmin, RouteUsers,
				RouteExpenses, RouteReports, RouteStartDay,
			),
			Landing:        RouteHome,
			ClosedDayRoute: RouteStartDay,
		}
	default: // waiter and any unknown role get the restricted set
		return Capabilities{
			Routes:         routeSet(RouteHome, RouteTables, RouteOrder),
			Landing:        RouteTables,
			ClosedDayRoute: RouteSystemClosed,
		}
	}
}

func routeSet(routes ...Route) map[Route]bool {
	set := make(map[Route]bool, len(routes))
	for _, r := range routes {
		set[r] = true
	}
	return set
}
