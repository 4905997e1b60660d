package domain

// RecordFilter defines filtering options for deployment records
type RecordFilter struct {
	Namespace string
	ChainID   uint64
	Name      string
	Tag       string
}
