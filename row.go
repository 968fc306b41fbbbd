package gpuprice

// Provider identifies a GPU cloud-pricing publisher.
type Provider string

// Supported pricing providers.
const (
	ProviderCoreWeave Provider = "coreweave"
	ProviderCrusoe    Provider = "crusoe"
	ProviderDenvr     Provider = "denvr"
	ProviderLambda    Provider = "lambda"
	ProviderNebius    Provider = "nebius"
	ProviderRunPod    Provider = "runpod"
)

// Row is the normalized pricing record every provider parser emits.
// Optional fields are pointers: a nil value means the source page did not
// carry the field, and serializes as JSON null / empty CSV cell. Values are
// never fabricated for missing fields.
type Row struct {
	Provider        string   `json:"provider"`
	Product         string   `json:"product"`
	GPUCount        *int     `json:"gpu_count"`
	VRAMGB          *float64 `json:"vram_gb"`
	VCPUs           *int     `json:"vcpus"`
	SystemRAMGB     *float64 `json:"system_ram_gb"`
	LocalStorageTB  *float64 `json:"local_storage_tb"`
	PricePerHourUSD *float64 `json:"price_per_hour_usd"`
}

// Validate returns an error if the row violates the schema invariants.
func (r *Row) Validate() error {
	if r.Provider == "" {
		return Errorf(EINVALID, "row provider required")
	}
	if r.Product == "" {
		return Errorf(EINVALID, "row product required")
	}
	if r.GPUCount != nil && *r.GPUCount < 0 {
		return Errorf(EINVALID, "row gpu_count must be >= 0")
	}
	if r.VRAMGB != nil && *r.VRAMGB <= 0 {
		return Errorf(EINVALID, "row vram_gb must be > 0")
	}
	if r.VCPUs != nil && *r.VCPUs < 0 {
		return Errorf(EINVALID, "row vcpus must be >= 0")
	}
	if r.SystemRAMGB != nil && *r.SystemRAMGB < 0 {
		return Errorf(EINVALID, "row system_ram_gb must be >= 0")
	}
	if r.LocalStorageTB != nil && *r.LocalStorageTB < 0 {
		return Errorf(EINVALID, "row local_storage_tb must be >= 0")
	}
	return nil
}

// ValidateRows validates every row, reporting the first violation with its
// position in the slice.
func ValidateRows(rows []Row) error {
	for i := range rows {
		if err := rows[i].Validate(); err != nil {
			return Errorf(EINVALID, "row %d: %s", i, ErrorMessage(err))
		}
	}
	return nil
}

// Parser converts one provider's raw page markup into normalized rows.
// Implementations are pure transformations over already-fetched documents
// with no shared mutable state, so parsers for different providers are safe
// to run concurrently.
type Parser interface {
	// Parse extracts normalized pricing rows from raw HTML.
	//
	// Returns ENOTFOUND if the expected structural anchor (pricing table,
	// section title, embedded payload) cannot be located, EINVALID if an
	// embedded payload is present but malformed, and EEMPTY if the provider's
	// contract requires at least one row and none survived normalization.
	// Rows that are not pricing data (no name, no price) are silently dropped,
	// never reported as errors.
	Parse(html string) ([]Row, error)

	// Provider returns the identifier stamped on every emitted row.
	Provider() Provider
}

// ParserRegistry manages provider-specific parsers.
type ParserRegistry interface {
	// Get returns the parser for a provider.
	// Returns nil if no parser is registered for the provider.
	Get(provider Provider) Parser

	// Register adds a parser for its provider.
	Register(parser Parser)

	// List returns all registered providers.
	List() []Provider
}
