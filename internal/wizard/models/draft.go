package models

import (
	"encoding/json"

	dErrors "seventytwo/pkg/domain-errors"
)

// StepID identifies one wizard step. Wire values stay step1..step5 for
// compatibility with drafts persisted by earlier portal versions.
type StepID string

const (
	StepAccountInfo         StepID = "step1"
	StepBusinessInfo        StepID = "step2"
	StepSupportingDocuments StepID = "step3"
	StepApplicationType     StepID = "step4"
	StepDisclaimer          StepID = "step5"
)

// ParseStepID validates a step key from an untrusted source.
func ParseStepID(s string) (StepID, error) {
	switch StepID(s) {
	case StepAccountInfo, StepBusinessInfo, StepSupportingDocuments, StepApplicationType, StepDisclaimer:
		return StepID(s), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown wizard step: %s", s)
	}
}

// AccountInfo is the first step: who is applying.
type AccountInfo struct {
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	MobileNumber string `json:"mobileNumber"`
}

// BusinessInfo is the second step: the business being registered.
type BusinessInfo struct {
	FirstName                   string   `json:"firstName"`
	LastName                    string   `json:"lastName"`
	Gender                      string   `json:"gender"`
	EmailAddress                string   `json:"emailAddress"`
	CellphoneNumber             string   `json:"cellphoneNumber"`
	BusinessName                string   `json:"businessName"`
	CIPCRegistrationNo          string   `json:"cipcRegistrationNo"`
	YearEstablished             string   `json:"yearEstablished"`
	AnnualTurnover              string   `json:"annualTurnover"`
	CityTownship                string   `json:"cityTownship"`
	BusinessResidentialCorridor string   `json:"businessResidentialCorridor"`
	BusinessIndustry            string   `json:"businessIndustry"`
	BusinessDescriptions        []string `json:"businessDescriptions"`
	BusinessOverview            string   `json:"businessOverview"`
	UniqueValueProposition      string   `json:"uniqueValueProposition"`
	ConsentToShare              bool     `json:"consentToShare"`
	Declaration                 bool     `json:"declaration"`
}

// DocumentChecklist is the third step in wizard mode: which supporting
// documents the applicant selected for upload. File bytes go through the
// document submission flow; the draft only records the chosen file names.
type DocumentChecklist struct {
	FileNames map[string]string `json:"fileNames"`
	Skipped   bool              `json:"skipped"`
}

// ApplicationSelection is the fourth step: which programmes are applied for.
type ApplicationSelection struct {
	SelectedPrograms []string `json:"selectedPrograms"`
	SelectedTypes    []string `json:"selectedTypes"`
	Description      string   `json:"description"`
}

// Declaration is the fifth step: document-in-hand confirmations plus the
// final declaration.
type Declaration struct {
	HasCIPCRegistration bool `json:"cipcRegistrationDocument"`
	HasBBBEECertificate bool `json:"validBBEECertificate"`
	HasProofOfID        bool `json:"proofOfID"`
	HasTaxClearance     bool `json:"validTaxClearance"`
	HasBusinessProfile  bool `json:"businessProfile"`
	DeclarationAccepted bool `json:"declaration"`
}

// Draft aggregates all in-progress step payloads for one wizard session.
// One field per step keeps the merge step-scoped by construction: writing
// step N can only ever touch step N's field.
type Draft struct {
	Account     *AccountInfo          `json:"step1,omitempty"`
	Business    *BusinessInfo         `json:"step2,omitempty"`
	Documents   *DocumentChecklist    `json:"step3,omitempty"`
	Application *ApplicationSelection `json:"step4,omitempty"`
	Disclaimer  *Declaration          `json:"step5,omitempty"`
}

// StepPayload is implemented by every step's payload type.
type StepPayload interface {
	Step() StepID
}

func (AccountInfo) Step() StepID          { return StepAccountInfo }
func (BusinessInfo) Step() StepID         { return StepBusinessInfo }
func (DocumentChecklist) Step() StepID    { return StepSupportingDocuments }
func (ApplicationSelection) Step() StepID { return StepApplicationType }
func (Declaration) Step() StepID          { return StepDisclaimer }

// Merge replaces exactly one step's payload, leaving every other step
// untouched. Replacement is wholesale: a later save of the same step never
// deep-merges into the earlier value.
func (d *Draft) Merge(payload StepPayload) {
	switch p := payload.(type) {
	case *AccountInfo:
		d.Account = p
	case *BusinessInfo:
		d.Business = p
	case *DocumentChecklist:
		d.Documents = p
	case *ApplicationSelection:
		d.Application = p
	case *Declaration:
		d.Disclaimer = p
	}
}

// DecodeStepPayload decodes raw JSON into the concrete payload for the step.
func DecodeStepPayload(step StepID, raw json.RawMessage) (StepPayload, error) {
	var target StepPayload
	switch step {
	case StepAccountInfo:
		target = &AccountInfo{}
	case StepBusinessInfo:
		target = &BusinessInfo{}
	case StepSupportingDocuments:
		target = &DocumentChecklist{}
	case StepApplicationType:
		target = &ApplicationSelection{}
	case StepDisclaimer:
		target = &Declaration{}
	default:
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown wizard step: %s", step)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "step payload is not valid JSON for this step")
	}
	return target, nil
}
