package appconf

// Environment selects runtime behavior: test forces in-memory storage,
// production hides the debug surface.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag (or config file value) to an
// Environment. Unknown values fall back to development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}
