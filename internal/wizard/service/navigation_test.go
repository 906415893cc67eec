package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seventytwo/internal/wizard/models"
	dErrors "seventytwo/pkg/domain-errors"
)

func TestNextAndBackWalkTheFixedSequence(t *testing.T) {
	assert.Equal(t, StateBusinessInfo, Next(StateAccountInfo))
	assert.Equal(t, StateSupportingDocuments, Next(StateBusinessInfo))
	assert.Equal(t, StateConfirmation, Next(StateDisclaimer))
	assert.Equal(t, StateConfirmation, Next(StateConfirmation))

	assert.Equal(t, StateAccountInfo, Back(StateBusinessInfo))
	assert.Equal(t, StateAccountInfo, Back(StateAccountInfo))
}

func TestBackIsInverseOfNext(t *testing.T) {
	for _, state := range stateOrder[:len(stateOrder)-1] {
		assert.Equal(t, state, Back(Next(state)), "Back(Next(%s))", state)
	}
}

func TestGateReportsAllViolationsAtOnce(t *testing.T) {
	err := gateError(gate(&models.AccountInfo{}))
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	msg := dErrors.MessageOf(err)
	assert.Contains(t, msg, "fullName is required")
	assert.Contains(t, msg, "emailAddress is required")
	assert.Contains(t, msg, "mobileNumber is required")
	assert.Equal(t, 3, len(strings.Split(msg, "; ")))
}

func TestBusinessGate(t *testing.T) {
	complete := &models.BusinessInfo{
		FirstName:                   "Thandi",
		LastName:                    "Mokoena",
		Gender:                      "female",
		EmailAddress:                "thandi@example.com",
		CellphoneNumber:             "0821234567",
		BusinessName:                "Mokoena Catering",
		BusinessResidentialCorridor: "Soweto",
		BusinessDescriptions:        []string{"catering"},
		Declaration:                 true,
	}
	assert.Empty(t, gate(complete))

	t.Run("whitespace does not satisfy a required field", func(t *testing.T) {
		p := *complete
		p.BusinessName = "   "
		violations := gate(&p)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "businessName")
	})

	t.Run("empty description list is a violation", func(t *testing.T) {
		p := *complete
		p.BusinessDescriptions = nil
		violations := gate(&p)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "businessDescriptions")
	})

	t.Run("unchecked declaration is a violation", func(t *testing.T) {
		p := *complete
		p.Declaration = false
		violations := gate(&p)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "declaration")
	})
}

func TestDocumentChecklistHasNoGate(t *testing.T) {
	assert.Empty(t, gate(&models.DocumentChecklist{}))
	assert.Empty(t, gate(&models.DocumentChecklist{Skipped: true}))
}

func TestDisclaimerGate(t *testing.T) {
	complete := &models.Declaration{
		HasCIPCRegistration: true,
		HasBBBEECertificate: true,
		HasProofOfID:        true,
		DeclarationAccepted: true,
	}
	assert.Empty(t, gate(complete))

	// Optional documents are not gated.
	assert.Empty(t, gate(&models.Declaration{
		HasCIPCRegistration: true,
		HasBBBEECertificate: true,
		HasProofOfID:        true,
		HasTaxClearance:     false,
		HasBusinessProfile:  false,
		DeclarationAccepted: true,
	}))

	violations := gate(&models.Declaration{})
	assert.Len(t, violations, 4)
}

func TestGateErrorOnCleanPayloadIsNil(t *testing.T) {
	require.NoError(t, gateError(nil))
	require.NoError(t, gateError([]string{}))
}
