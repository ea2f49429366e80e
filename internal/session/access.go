package session

// Page paths known to the UI.
const (
	PathHome                   = "/"
	PathLogin                  = "/login"
	PathDashboard              = "/dashboard"
	PathDiseasePrediction      = "/disease-prediction"
	PathMedicineRecommendation = "/medicine-recommendation"
	PathProfile                = "/profile"
	PathAnalytics              = "/analytics"
)

type access int

const (
	accessPublic access = iota
	accessGuest
	accessSignedIn
	accessAdmin
)

var routes = map[string]access{
	PathHome:                   accessPublic,
	PathLogin:                  accessGuest,
	PathDashboard:              accessSignedIn,
	PathDiseasePrediction:      accessSignedIn,
	PathMedicineRecommendation: accessSignedIn,
	PathProfile:                accessSignedIn,
	PathAnalytics:              accessAdmin,
}

// Decision says whether a page may render, and where to go instead.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Authorize applies the page access rules to id (nil when anonymous).
func Authorize(id *Identity, path string) Decision {
	rule, ok := routes[path]
	if !ok {
		return Decision{Redirect: PathHome}
	}

	switch rule {
	case accessGuest:
		if id != nil {
			return Decision{Redirect: PathDashboard}
		}
	case accessSignedIn:
		if id == nil {
			return Decision{Redirect: PathLogin}
		}
	case accessAdmin:
		if id == nil || id.Role != RoleAdmin {
			return Decision{Redirect: PathDashboard}
		}
	}
	return Decision{Allowed: true}
}
