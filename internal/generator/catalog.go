package generator

// Option is one selectable configuration value
type Option struct {
	Value       string
	Label       string
	Description string
}

// Catalog lists every value the configure step offers
type Catalog struct {
	OutputFormats []Option
	QueryTypes    []Option
	Complexity    []Option
	CommentLevels []Option
}

var defaultCatalog = Catalog{
	OutputFormats: []Option{
		{Value: "excel", Label: "Excel Workbook (.xlsx)", Description: "One sheet listing every test case"},
		{Value: "word", Label: "Word Document (.docx)", Description: "Readable test plan document"},
		{Value: "csv", Label: "CSV File (.csv)", Description: "Comma separated test case list"},
		{Value: "text", Label: "Text File (.txt)", Description: "Plain text test case list"},
	},
	QueryTypes: []Option{
		{Value: "count", Label: "Count Validation", Description: "Row count comparisons between source and target"},
		{Value: "mapping", Label: "Column Mapping", Description: "Field-level data validation"},
		{Value: "quality", Label: "Data Quality", Description: "Data integrity and quality checks"},
		{Value: "business", Label: "Business Rule", Description: "Custom business logic validation"},
		{Value: "null", Label: "Null Validation", Description: "Null value and completeness checks"},
	},
	Complexity: []Option{
		{Value: "basic", Label: "Basic Queries", Description: "Simple SELECT statements"},
		{Value: "intermediate", Label: "Intermediate", Description: "JOINs and aggregations"},
		{Value: "advanced", Label: "Advanced", Description: "Complex queries with CTEs and window functions"},
	},
	CommentLevels: []Option{
		{Value: "detailed", Label: "Detailed Comments", Description: "Comprehensive explanations"},
		{Value: "basic", Label: "Basic Comments", Description: "Essential comments only"},
		{Value: "none", Label: "No Comments", Description: "Clean code without comments"},
	},
}

// DefaultCatalog returns a copy of the built-in option catalog
func DefaultCatalog() Catalog {
	return Catalog{
		OutputFormats: append([]Option(nil), defaultCatalog.OutputFormats...),
		QueryTypes:    append([]Option(nil), defaultCatalog.QueryTypes...),
		Complexity:    append([]Option(nil), defaultCatalog.Complexity...),
		CommentLevels: append([]Option(nil), defaultCatalog.CommentLevels...),
	}
}

// Label returns the label of value within options, or value itself when unknown
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Values returns the option values in catalog order
func Values(options []Option) []string {
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = o.Value
	}
	return values
}
