// ABOUTME: Immutable process environment for the push subprocess.
// ABOUTME: Layers the credential overrides on a snapshot of the caller's env.
package pusher

import "strings"

// Variable names the tool reads when it needs credentials.
const (
	EnvAskPass  = "GIT_ASKPASS"
	EnvUsername = "GIT_USERNAME"
	EnvPassword = "GIT_PASSWORD"
)

// DefaultAskPass answers any credential prompt without a terminal.
const DefaultAskPass = "/bin/echo"

// Environment is a snapshot of a base environment plus the three overrides.
// The zero value is usable and yields only the overrides.
type Environment struct {
	base      []string
	overrides [][2]string
}

// NewEnvironment snapshots base (typically os.Environ()) and records the
// askpass helper and credentials as overrides.
func NewEnvironment(base []string, askPass string, creds Credentials) Environment {
	snapshot := make([]string, len(base))
	copy(snapshot, base)
	return Environment{
		base: snapshot,
		overrides: [][2]string{
			{EnvAskPass, askPass},
			{EnvUsername, creds.Username},
			{EnvPassword, creds.Password},
		},
	}
}

// Environ returns the merged environment. Overridden keys replace base
// entries in place; keys absent from base are appended in override order.
func (e Environment) Environ() []string {
	out := make([]string, 0, len(e.base)+len(e.overrides))
	applied := make(map[string]bool, len(e.overrides))

	for _, kv := range e.base {
		key, _, _ := strings.Cut(kv, "=")
		if val, ok := e.lookupOverride(key); ok {
			if applied[key] {
				continue
			}
			out = append(out, key+"="+val)
			applied[key] = true
			continue
		}
		out = append(out, kv)
	}

	for _, ov := range e.overrides {
		if !applied[ov[0]] {
			out = append(out, ov[0]+"="+ov[1])
			applied[ov[0]] = true
		}
	}
	return out
}

// Overrides returns the overridden variables as KEY=VALUE pairs.
func (e Environment) Overrides() []string {
	out := make([]string, 0, len(e.overrides))
	for _, ov := range e.overrides {
		out = append(out, ov[0]+"="+ov[1])
	}
	return out
}

func (e Environment) lookupOverride(key string) (string, bool) {
	for _, ov := range e.overrides {
		if ov[0] == key {
			return ov[1], true
		}
	}
	return "", false
}
