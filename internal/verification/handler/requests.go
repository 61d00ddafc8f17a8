package handler

import "integrationhub/internal/verification/models"

// VerifyPANRequest is the body of POST /pan-verification/verify and /validate.
type VerifyPANRequest struct {
	PANNumber string `json:"panNumber" validate:"required" jsonschema:"description=PAN to verify,example=ABCDE1234F"`
	Name      string `json:"name" validate:"required" jsonschema:"description=Name as claimed by the holder,example=JOHN DOE"`
	DOB       string `json:"dob,omitempty" jsonschema:"description=Date of birth (informational),example=01/01/1990"`
}

// VerifyGSTRequest is the body of POST /gst/verify.
type VerifyGSTRequest struct {
	GSTNumber string `json:"gstNumber" validate:"required" jsonschema:"minLength=15,maxLength=15,example=29AABCU9603R1ZM"`
}

// GenerateOTPRequest is the body of POST /aadhaar/generate-otp.
type GenerateOTPRequest struct {
	AadhaarNumber string `json:"aadhaarNumber" validate:"required" jsonschema:"description=12 digit Aadhaar number"`
}

// VerifyOTPRequest is the body of POST /aadhaar/verify-otp.
type VerifyOTPRequest struct {
	RequestID string `json:"requestId" validate:"required" jsonschema:"description=Request ID returned by generate-otp"`
	OTP       string `json:"otp" validate:"required"`
}

// OfflineVerifyRequest is the body of POST /aadhaar/offline-verify.
type OfflineVerifyRequest struct {
	XMLData string `json:"xmlData" validate:"required" jsonschema:"description=Offline e-KYC XML"`
}

// GenerateKYCLinkRequest is the body of POST /aadhaar/generate-kyc-link.
type GenerateKYCLinkRequest struct {
	FirstName      string `json:"firstName" validate:"required" jsonschema:"example=John"`
	LastName       string `json:"lastName" validate:"required" jsonschema:"example=Doe"`
	UID            string `json:"uid" validate:"required" jsonschema:"description=Aadhaar UID (12 digits),example=123456789012"`
	Mobile         string `json:"mobile" validate:"required" jsonschema:"description=Mobile number the link is sent to,example=9876543210"`
	EmailID        string `json:"emailId,omitempty" validate:"omitempty,email"`
	RedirectionURL string `json:"redirectionUrl" validate:"required" jsonschema:"description=URL to redirect to after KYC"`
}

// KYCDetailsRequest is the body of POST /aadhaar/kyc-details.
type KYCDetailsRequest struct {
	TransactionID string `json:"transactionId" validate:"required" jsonschema:"description=Transaction ID returned by generate-kyc-link"`
}

// ChequeForm documents the multipart fields of POST /ocr/v1/cheque.
type ChequeForm struct {
	ImageURL          string `json:"imageUrl" jsonschema:"description=Cheque image file,contentEncoding=binary"`
	ClientRefID       string `json:"clientRefId" validate:"required" jsonschema:"example=CLT21"`
	AccountHolderName string `json:"accountHolderName,omitempty" jsonschema:"description=Name as per bank records"`
	IsCompleteImage   string `json:"isCompleteImage" validate:"required,oneof=yes no" jsonschema:"enum=yes,enum=no"`
}

// PANUploadForm documents the multipart fields of the PAN OCR endpoints.
type PANUploadForm struct {
	File        string `json:"file" jsonschema:"description=PAN card image (field imageUrl on /ocr/v1/pan),contentEncoding=binary"`
	ClientRefID string `json:"clientRefId,omitempty"`
}

// ClaimView is the data returned for a PAN verification.
type ClaimView struct {
	Success  bool           `json:"success"`
	Verified bool           `json:"verified"`
	Provider string         `json:"provider"`
	Details  map[string]any `json:"details,omitempty"`
	Message  string         `json:"message,omitempty"`

	Attempts []models.AttemptSummary `json:"attempts,omitempty"`
}

// OCRView is the data returned for a PAN image extraction.
type OCRView struct {
	Provider string `json:"provider"`
	Response any    `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}
