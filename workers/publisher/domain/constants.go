package domain

// OptionSeparator splits the CSV options column back into option texts.
const OptionSeparator = " | "

// PublicPrefix is the fixed key prefix rehosted objects are written under.
const PublicPrefix = "public/"

// DefaultImageExtension is used when neither the content type nor the source
// URL yields a usable file extension.
const DefaultImageExtension = "png"

// CSVHeader must match the header the scraper writes.
var CSVHeader = []string{
	"question",
	"question_images",
	"options",
	"options_images",
	"answer",
	"answer_images",
	"note",
}
