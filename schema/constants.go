package schema

// Custom string types for type safety.
type (
	// Regime represents the coarse decay bucket of an event.
	Regime string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// Encoding represents the byte encoding of the input CSV.
	Encoding string

	// PlotMode represents how the scatter plot is rendered to the console.
	PlotMode string
)

// All regimes supported.
const (
	ShockRegime      Regime = "shock"
	PersistentRegime Regime = "persistent"
)

// PersistenceThresholdDays is the half-life at or above which an event is persistent.
const PersistenceThresholdDays = 2

// DayColumn is the name given to the first column of the input.
const DayColumn = "Day"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All input encodings supported.
const (
	AutoEncoding   Encoding = "auto" // default
	Latin1Encoding Encoding = "latin1"
	UTF8Encoding   Encoding = "utf8"
)

// All console plot modes supported.
const (
	TextPlot PlotMode = "text" // default
	NoPlot   PlotMode = "none"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// AllRegimes lists regimes in reporting order.
var AllRegimes = []Regime{ShockRegime, PersistentRegime}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidEncodings lists all valid input encodings.
var ValidEncodings = map[Encoding]struct{}{
	AutoEncoding:   {},
	Latin1Encoding: {},
	UTF8Encoding:   {},
}

// ValidPlotModes lists all valid console plot modes.
var ValidPlotModes = map[PlotMode]struct{}{
	TextPlot: {},
	NoPlot:   {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
