package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonnetkb/bonnet/config"
	"github.com/bonnetkb/bonnet/kb"
)

func TestParseSubjectValue(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		fallback    string
		wantSubject string
		wantValue   string
	}{
		{
			name:        "subject equals value",
			text:        "diet=fish and plankton",
			fallback:    "fact",
			wantSubject: "diet",
			wantValue:   "fish and plankton",
		},
		{
			name:        "no separator uses fallback subject",
			text:        "apex predator",
			fallback:    "fact",
			wantSubject: "fact",
			wantValue:   "apex predator",
		},
		{
			name:        "splits on first separator only",
			text:        "formula=a=b",
			fallback:    "rule",
			wantSubject: "formula",
			wantValue:   "a=b",
		},
		{
			name:        "whitespace trimmed around both sides",
			text:        " feeding = restock tank ",
			fallback:    "task",
			wantSubject: "feeding",
			wantValue:   "restock tank",
		},
		{
			name:        "empty subject kept when separator leads",
			text:        "=just a value",
			fallback:    "fact",
			wantSubject: "",
			wantValue:   "just a value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, value := parseSubjectValue(tt.text, tt.fallback)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func newPolicyTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addResolutionFlags(cmd)
	return cmd
}

func TestCommandPolicyFirstFlagWins(t *testing.T) {
	cmd := newPolicyTestCmd()
	require.NoError(t, cmd.Flags().Set("first", "true"))
	require.NoError(t, cmd.Flags().Set("policy", "fail"))

	policy, err := commandPolicy(cmd, &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, kb.PolicyFirst, policy)
}

func TestCommandPolicyExplicitFlag(t *testing.T) {
	cmd := newPolicyTestCmd()
	require.NoError(t, cmd.Flags().Set("policy", "interactive"))

	policy, err := commandPolicy(cmd, &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, kb.PolicyInteractive, policy)
}

func TestCommandPolicyRejectsUnknown(t *testing.T) {
	cmd := newPolicyTestCmd()
	require.NoError(t, cmd.Flags().Set("policy", "guess"))

	_, err := commandPolicy(cmd, &config.Config{})
	assert.Error(t, err)
}
