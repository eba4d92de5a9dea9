package mailparse

const (
	Name    = "mailparse"
	Version = "0.1.0"
)

// DefaultMaxDepth is the multipart nesting limit used when none is configured.
const DefaultMaxDepth = 64

// Header names the parser and its accessors look at.
const (
	HeaderContentType             = "Content-Type"
	HeaderContentDisposition      = "Content-Disposition"
	HeaderContentTransferEncoding = "Content-Transfer-Encoding"
	HeaderContentID               = "Content-ID"
	HeaderMessageID               = "Message-ID"
	HeaderAuthenticationResults   = "Authentication-Results"
	HeaderDate                    = "Date"
	HeaderSubject                 = "Subject"
)

// MimeMultipartMixed combines parts of different types, such as text and attachments.
const MimeMultipartMixed = "multipart/mixed"

// MimeMultipartAlternative carries the same content in several formats.
const MimeMultipartAlternative = "multipart/alternative"

// MimeMultipartRelated groups a root part with the resources it references.
const MimeMultipartRelated = "multipart/related"

// MimeMultipartSigned holds content and its detached signature.
const MimeMultipartSigned = "multipart/signed"

// MimeMultipartDigest holds a collection of messages, each defaulting to message/rfc822.
const MimeMultipartDigest = "multipart/digest"

const MimeTextPlain = "text/plain"

const MimeTextHtml = "text/html"

// MimeMessageEmail embeds an entire message, headers included.
const MimeMessageEmail = "message/rfc822"

// MimeMessageDeliveryStatus is the machine readable part of a bounce.
const MimeMessageDeliveryStatus = "message/delivery-status"

const MimeApplicationOctet = "application/octet-stream"
