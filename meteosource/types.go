package meteosource

// Subscription tiers. The tier is part of every request URL.
const (
	TierFree     = "free"
	TierStartup  = "startup"
	TierStandard = "standard"
	TierFlexi    = "flexi"
)

// API endpoints.
const (
	EndpointPoint       = "point"
	EndpointTimeMachine = "time_machine"
)

// Section selectors for PointRequest.Sections. Multiple sections can be
// combined with commas, e.g. "current,hourly".
const (
	SectionsAll      = "all"
	SectionsCurrent  = "current"
	SectionsMinutely = "minutely"
	SectionsHourly   = "hourly"
	SectionsDaily    = "daily"
	SectionsAlerts   = "alerts"
)

// Unit systems.
const (
	UnitsAuto   = "auto"
	UnitsMetric = "metric"
	UnitsUS     = "us"
	UnitsUK     = "uk"
	UnitsCA     = "ca"
)

// Forecast languages.
const (
	LangEnglish    = "en"
	LangBulgarian  = "bg"
	LangCzech      = "cs"
	LangGerman     = "de"
	LangGreek      = "el"
	LangSpanish    = "es"
	LangFrench     = "fr"
	LangHungarian  = "hu"
	LangItalian    = "it"
	LangDutch      = "nl"
	LangPolish     = "pl"
	LangPortuguese = "pt"
	LangRomanian   = "ro"
	LangRussian    = "ru"
	LangSlovak     = "sk"
	LangUkrainian  = "uk"
	LangChinese    = "zh"
)
