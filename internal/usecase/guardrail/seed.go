package guardrail

// DefaultDenylist returns the built-in denylist phrases. Used when no
// denylist file is configured.
func DefaultDenylist() []string {
	return []string{
		"instructions for illegal activity",
		"how to build a weapon",
		"self-harm methods",
		"violent wrongdoing instructions",
		"bypass safety mechanisms",
		"create malware code",
		"fraud techniques tutorial",
		"illegal drug manufacturing",
		"hack into systems",
		"steal personal information",
	}
}
