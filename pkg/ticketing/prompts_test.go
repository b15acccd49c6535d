package ticketing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetailForm(t *testing.T) {
	for _, node := range []NodeID{
		NodeSupportDetails, NodeOtherDetails, NodePaypalDetails,
		NodeSteamDetails, NodeOtherRewardDetails, NodeOtherGiftCardDetails,
	} {
		form := DetailForm(node)
		require.NotNil(t, form, "node %s", node)
		require.Equal(t, node, form.Node)
		require.Len(t, form.Fields, 1)

		f := form.Fields[0]
		require.NotEmpty(t, f.Key)
		require.NotEmpty(t, f.Label)
		require.Greater(t, f.MaxLen, f.MinLen)
	}

	// Selection nodes have no form.
	require.Nil(t, DetailForm(NodeReason))
	require.Nil(t, DetailForm(NodeRewardType))
	require.Nil(t, DetailForm(NodeGiftCardType))
}

func TestPromptsCarryGoBack(t *testing.T) {
	// The root prompt has no parent to go back to.
	for _, opt := range ReasonPrompt().Options {
		require.NotEqual(t, GoBackValue, opt.Value)
	}

	requireHasGoBack := func(p *OptionsPrompt) {
		t.Helper()
		found := false
		for _, opt := range p.Options {
			if opt.Value == GoBackValue {
				found = true
			}
		}
		require.True(t, found, "prompt %s is missing the go back option", p.Node)
	}

	requireHasGoBack(RewardTypePrompt(ReasonGiveawayReward))
	requireHasGoBack(RewardTypePrompt(ReasonEventReward))
	requireHasGoBack(GiftCardTypePrompt())
}

func TestRewardTypePromptDescription(t *testing.T) {
	require.Contains(t, RewardTypePrompt(ReasonGiveawayReward).Description, "your giveaway prize")
	require.Contains(t, RewardTypePrompt(ReasonEventReward).Description, "the event")
}
