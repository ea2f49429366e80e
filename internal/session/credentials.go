package session

// Verifier resolves an email/password pair to an Identity.
type Verifier interface {
	Verify(email, password string) (Identity, bool)
}

type credential struct {
	password string
	identity Identity
}

// StaticCredentials is a fixed in-memory credential table compared by plain
// equality. It exists for the demo accounts only.
type StaticCredentials struct {
	byEmail map[string]credential
}

// DemoCredentials returns the two built-in demo accounts.
func DemoCredentials() *StaticCredentials {
	c := &StaticCredentials{byEmail: map[string]credential{}}
	c.add("admin123", Identity{
		ID:    "1",
		Name:  "Dr. Sarah Johnson",
		Email: "admin@healthcare.com",
		Role:  RoleAdmin,
	})
	c.add("user123", Identity{
		ID:             "2",
		Name:           "John Smith",
		Email:          "user@healthcare.com",
		Role:           RoleUser,
		MedicalHistory: []MedicalRecord{},
		Preferences:    map[string]any{},
	})
	return c
}

func (c *StaticCredentials) add(password string, id Identity) {
	c.byEmail[id.Email] = credential{password: password, identity: id}
}

func (c *StaticCredentials) Verify(email, password string) (Identity, bool) {
	cred, ok := c.byEmail[email]
	if !ok || cred.password != password {
		return Identity{}, false
	}
	return cloneIdentity(cred.identity), true
}

func cloneIdentity(id Identity) Identity {
	if id.MedicalHistory != nil {
		id.MedicalHistory = append([]MedicalRecord{}, id.MedicalHistory...)
	}
	if id.Preferences != nil {
		prefs := make(map[string]any, len(id.Preferences))
		for k, v := range id.Preferences {
			prefs[k] = v
		}
		id.Preferences = prefs
	}
	return id
}
