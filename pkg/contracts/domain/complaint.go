package domain

// Canonical column labels after normalization
const (
	ColumnProduct            = "product"
	ColumnSubProduct         = "sub-product"
	ColumnIssue              = "issue"
	ColumnSubIssue           = "sub-issue"
	ColumnConsumerComplaint  = "consumer_complaint"
	ColumnPublicResponse     = "public_response"
	ColumnCompany            = "company"
	ColumnState              = "state"
	ColumnZipCode            = "zip_code"
	ColumnTags               = "tags"
	ColumnConsumerConsent    = "consumer_consent"
	ColumnSubmittedVia       = "submitted_via"
	ColumnDateReceived       = "date_received"
	ColumnDateSent           = "date_sent"
	ColumnResponseToConsumer = "response_to_consumer"
	ColumnTimelyResponse     = "timely_response"
	ColumnConsumerDisputed   = "consumer_disputed"
	ColumnComplaintID        = "complaint_id"
)

// SentinelUnknown replaces missing values in fill-target columns
const SentinelUnknown = "unknown"

// ColumnAliases maps long normalized labels to their short names
var ColumnAliases = map[string]string{
	"consumer_complaint_narrative": ColumnConsumerComplaint,
	"company_public_response":      ColumnPublicResponse,
	"consumer_consent_provided":    ColumnConsumerConsent,
	"company_response_to_consumer": ColumnResponseToConsumer,
	"date_sent_to_company":         ColumnDateSent,
}

// FillColumns are filled with SentinelUnknown when present
var FillColumns = []string{
	ColumnSubProduct,
	ColumnSubIssue,
	ColumnConsumerComplaint,
	ColumnPublicResponse,
	ColumnZipCode,
	ColumnTags,
	ColumnConsumerConsent,
	ColumnResponseToConsumer,
	ColumnConsumerDisputed,
}

// DateColumns are parsed as timestamps when present
var DateColumns = []string{
	ColumnDateReceived,
	ColumnDateSent,
}

// TextColumns are lower-cased when present
var TextColumns = []string{
	ColumnProduct,
	ColumnSubProduct,
	ColumnIssue,
	ColumnSubIssue,
	ColumnConsumerComplaint,
	ColumnPublicResponse,
	ColumnCompany,
	ColumnState,
	ColumnZipCode,
	ColumnTags,
	ColumnConsumerConsent,
	ColumnSubmittedVia,
	ColumnResponseToConsumer,
	ColumnTimelyResponse,
	ColumnConsumerDisputed,
}
