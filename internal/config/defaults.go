package config

const (
	defaultConfigPath        = "~/.config/subdeck/config.toml"
	projectConfigName        = "subdeck.toml"
	defaultOutputDir         = "cards"
	defaultPathID            = "default"
	defaultPrimaryLanguage   = "it"
	defaultSecondaryLanguage = "de"
	defaultMergeGapMs        = 300
	defaultSecondaryPadMs    = 250
	defaultIDMode            = "sequence"
	defaultChapterMinutes    = 7
	defaultMinWordLength     = 3
	defaultMaxWordCards      = 80
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Environment variables consulted when the matching config value is empty.
const (
	EnvDictionary = "SUBDECK_DICTIONARY"
	EnvOutputDir  = "SUBDECK_OUTPUT_DIR"
	EnvLogLevel   = "SUBDECK_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults. The output
// directory and log level stay empty so environment fallbacks can apply.
func Default() Config {
	return Config{
		Deck: Deck{
			PathID:            defaultPathID,
			PrimaryLanguage:   defaultPrimaryLanguage,
			SecondaryLanguage: defaultSecondaryLanguage,
		},
		Phrases: Phrases{
			MergeAdjacentUnits: true,
			MergeGapMs:         defaultMergeGapMs,
			SecondaryPadMs:     defaultSecondaryPadMs,
			IDMode:             defaultIDMode,
		},
		Words: Words{
			MinWordLength:          defaultMinWordLength,
			MaxWordCardsPerChapter: defaultMaxWordCards,
		},
		Chapters: Chapters{
			ChapterMinutes: defaultChapterMinutes,
		},
		Parser: Parser{
			DropCreditLines: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
		},
	}
}
