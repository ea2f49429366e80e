package session

import "testing"

func TestAuthorize(t *testing.T) {
	admin := &Identity{ID: "1", Role: RoleAdmin}
	user := &Identity{ID: "2", Role: RoleUser}
	analyst := &Identity{ID: "3", Role: RoleAnalyst}

	cases := []struct {
		name string
		id   *Identity
		path string
		want Decision
	}{
		{"home anonymous", nil, PathHome, Decision{Allowed: true}},
		{"login anonymous", nil, PathLogin, Decision{Allowed: true}},
		{"login signed in", user, PathLogin, Decision{Redirect: PathDashboard}},
		{"dashboard anonymous", nil, PathDashboard, Decision{Redirect: PathLogin}},
		{"dashboard user", user, PathDashboard, Decision{Allowed: true}},
		{"prediction anonymous", nil, PathDiseasePrediction, Decision{Redirect: PathLogin}},
		{"medicine user", user, PathMedicineRecommendation, Decision{Allowed: true}},
		{"profile analyst", analyst, PathProfile, Decision{Allowed: true}},
		{"analytics admin", admin, PathAnalytics, Decision{Allowed: true}},
		{"analytics user", user, PathAnalytics, Decision{Redirect: PathDashboard}},
		{"analytics analyst", analyst, PathAnalytics, Decision{Redirect: PathDashboard}},
		{"analytics anonymous", nil, PathAnalytics, Decision{Redirect: PathDashboard}},
		{"unknown page", admin, "/settings", Decision{Redirect: PathHome}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.id, tc.path); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
