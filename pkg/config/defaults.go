package config

const (
	defaultSystemPrompt = "You are a helpful assistant that evaluates whether a Slack message is " +
		"about offering an edible treat. Respond with 'yes' or 'no' and include certainty level " +
		"in percentage (0-100%). Example: 'Yes, 95%' or 'No, 80%'."

	defaultTextPrompt = "Only respond with 'yes' or 'no' and include certainty level in percentage " +
		"(0%-100%) that represents how likely you are that the message is about a colleague " +
		"offering an edible treat (like a cake, candy, or pie). If the message mentions a location " +
		"or hub outside of Amsterdam, be more confident in 'no'. If the message contains a lot of " +
		"other information about work, be more confident in your 'no'. Example response format is: " +
		"'Yes, 95%' or 'No, 80%'. Message: '{message}'"

	defaultImagePrompt = "Only respond with 'yes' or 'no' and include certainty level in percentage " +
		"(0%-100%) that represents how likely you are that the attached images depict an edible " +
		"treat (like a cake, candy, or pie) being offered to colleagues. Example response format " +
		"is: 'Yes, 95%' or 'No, 80%'."
)

func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			MaxTokens:      300,
			TimeoutSeconds: 10,
			SystemPrompt:   defaultSystemPrompt,
			TextPrompt:     defaultTextPrompt,
			ImagePrompt:    defaultImagePrompt,
		},
		Radar: RadarConfig{
			AlertChannel:      "#cake-radar",
			FalseAlarmChannel: "#cake-radar-false-alarms",
			Threshold:         85,
			DedupWindow:       1000,
			ArchiveBaseURL:    "https://slack.com/archives",
		},
		Gateway: GatewayConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Digest: DigestConfig{
			Schedule: "0 9 * * *",
		},
	}
}

// defaultKeywords is the fallback base list used when no keywords file is
// configured or it cannot be read. Plural forms are derived at startup.
func defaultKeywords() []string {
	return []string{
		"anniversary", "babka", "baklava", "banana bread", "birthday", "biscuit",
		"blondie", "brownie", "brought some", "cake", "cannoli", "caramel",
		"celebration", "cheesecake", "chocolate", "churros", "cookie", "croissant",
		"crumble", "cupcake", "danish", "dessert", "donut", "eclair", "fudge",
		"gelato", "gingerbread", "kitchen area", "macaron", "marzipan", "meringue",
		"mochi", "muffin", "nougat", "oliebol", "pancake", "pastry", "pavlova",
		"pie", "poffertjes", "praline", "pudding", "scone", "shortbread", "snack",
		"stroopwafel", "strudel", "sundae", "sweets", "tart", "tiramisu", "toffee",
		"tompouce", "torte", "treat", "truffle", "vlaai", "waffle",
	}
}
