package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteRegister is the registration route.
	RouteRegister = "/register"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteDashboard is the dashboard route.
	RouteDashboard = "/dashboard"
	// RouteHealth is the health check route.
	RouteHealth = "/health"

	// RouteAddApartment is the apartment creation route.
	RouteAddApartment = "/add_apartment"
	// RouteManageApartments is the apartment list route.
	RouteManageApartments = "/manage_apartments"
	// RouteEditApartment is the apartment edit route.
	RouteEditApartment = "/edit_apartment"
	// RouteDeleteApartment is the apartment delete route.
	RouteDeleteApartment = "/delete_apartment"

	// RouteAddTenant is the tenant creation route.
	RouteAddTenant = "/add_tenant"
	// RouteManageTenants is the tenant list route.
	RouteManageTenants = "/manage_tenants"
	// RouteEditTenant is the tenant edit route.
	RouteEditTenant = "/edit_tenant"
	// RouteDeleteTenant is the tenant delete route.
	RouteDeleteTenant = "/delete_tenant"

	// RouteEditApartmentID is the apartment edit route pattern.
	RouteEditApartmentID = RouteEditApartment + RouteParamID
	// RouteDeleteApartmentID is the apartment delete route pattern.
	RouteDeleteApartmentID = RouteDeleteApartment + RouteParamID
	// RouteEditTenantID is the tenant edit route pattern.
	RouteEditTenantID = RouteEditTenant + RouteParamID
	// RouteDeleteTenantID is the tenant delete route pattern.
	RouteDeleteTenantID = RouteDeleteTenant + RouteParamID
)

const (
	redirectRoot             = RouteRoot
	redirectRegister         = RouteRegister
	redirectLogin            = RouteLogin
	redirectDashboard        = RouteDashboard
	redirectAddApartment     = RouteAddApartment
	redirectManageApartments = RouteManageApartments
	redirectAddTenant        = RouteAddTenant
	redirectManageTenants    = RouteManageTenants
)

// ApartmentUnassigned is the form value meaning "no apartment selected".
// It is normalized to NULL before storage.
const ApartmentUnassigned = "None"
