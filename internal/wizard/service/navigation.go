package service

import (
	"strings"

	"seventytwo/internal/wizard/models"
	dErrors "seventytwo/pkg/domain-errors"
)

// State is one position in the wizard. The sequence is fixed and linear;
// Confirmation is terminal and only reachable through Submit.
type State string

const (
	StateAccountInfo         State = "account_info"
	StateBusinessInfo        State = "business_info"
	StateSupportingDocuments State = "supporting_documents"
	StateApplicationType     State = "application_type"
	StateDisclaimer          State = "disclaimer"
	StateConfirmation        State = "confirmation"
)

var stateOrder = []State{
	StateAccountInfo,
	StateBusinessInfo,
	StateSupportingDocuments,
	StateApplicationType,
	StateDisclaimer,
	StateConfirmation,
}

// StateFor maps a step to the wizard state that collects it.
func StateFor(step models.StepID) State {
	switch step {
	case models.StepAccountInfo:
		return StateAccountInfo
	case models.StepBusinessInfo:
		return StateBusinessInfo
	case models.StepSupportingDocuments:
		return StateSupportingDocuments
	case models.StepApplicationType:
		return StateApplicationType
	case models.StepDisclaimer:
		return StateDisclaimer
	default:
		return StateAccountInfo
	}
}

// Next returns the state after s; Confirmation is a fixed point.
func Next(s State) State {
	for i, st := range stateOrder {
		if st == s && i+1 < len(stateOrder) {
			return stateOrder[i+1]
		}
	}
	return StateConfirmation
}

// Back returns the state before s; AccountInfo is a fixed point.
func Back(s State) State {
	for i, st := range stateOrder {
		if st == s && i > 0 {
			return stateOrder[i-1]
		}
	}
	return StateAccountInfo
}

// gate validates one step's payload and returns every violated constraint,
// not just the first: the applicant fixes the whole form in one pass.
func gate(payload models.StepPayload) []string {
	var violations []string
	missing := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			violations = append(violations, field+" is required")
		}
	}

	switch p := payload.(type) {
	case *models.AccountInfo:
		missing("fullName", p.FullName)
		missing("emailAddress", p.EmailAddress)
		missing("mobileNumber", p.MobileNumber)
	case *models.BusinessInfo:
		missing("firstName", p.FirstName)
		missing("lastName", p.LastName)
		missing("gender", p.Gender)
		missing("emailAddress", p.EmailAddress)
		missing("cellphoneNumber", p.CellphoneNumber)
		missing("businessName", p.BusinessName)
		missing("businessResidentialCorridor", p.BusinessResidentialCorridor)
		// List-valued: present means at least one selected item.
		if len(p.BusinessDescriptions) == 0 {
			violations = append(violations, "businessDescriptions requires at least one selection")
		}
		if !p.Declaration {
			violations = append(violations, "declaration must be accepted")
		}
	case *models.DocumentChecklist:
		// No gate: the step is skippable in wizard mode and the standalone
		// flow enforces required documents itself.
	case *models.ApplicationSelection:
		if len(p.SelectedPrograms) == 0 {
			violations = append(violations, "selectedPrograms requires at least one selection")
		}
	case *models.Declaration:
		if !p.HasCIPCRegistration {
			violations = append(violations, "cipcRegistrationDocument must be confirmed")
		}
		if !p.HasBBBEECertificate {
			violations = append(violations, "validBBEECertificate must be confirmed")
		}
		if !p.HasProofOfID {
			violations = append(violations, "proofOfID must be confirmed")
		}
		if !p.DeclarationAccepted {
			violations = append(violations, "declaration must be accepted")
		}
	}
	return violations
}

// gateError folds violations into one validation error carrying all of them.
func gateError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, strings.Join(violations, "; "))
}
