package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Admin(t *testing.T) {
	caps := Resolve(RoleAdmin)

	assert.True(t, caps.Allows(RouteUsers))
	assert.True(t, caps.Allows(RouteStartDay))
	assert.True(t, caps.Allows(RouteReports))
	assert.Equal(t, RouteHome, caps.Landing)
	assert.Equal(t, RouteStartDay, caps.ClosedDayRoute)
}

func TestResolve_Waiter(t *testing.T) {
	caps := Resolve(RoleWaiter)

	assert.True(t, caps.Allows(RouteTables))
	assert.True(t, caps.Allows(RouteOrder))
	assert.False(t, caps.Allows(RouteUsers))
	assert.False(t, caps.Allows(RouteStartDay))
	assert.False(t, caps.Allows(RouteExpenses))
	assert.Equal(t, RouteTables, caps.Landing)
	assert.Equal(t, RouteSystemClosed, caps.ClosedDayRoute)
}

func TestResolve_UnknownRoleIsRestricted(t *testing.T) {
	caps := Resolve(Role("intern"))

	assert.False(t, caps.Allows(RouteUsers))
	assert.Equal(t, RouteSystemClosed, caps.ClosedDayRoute)
}
