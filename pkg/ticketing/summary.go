package ticketing

import (
	"fmt"
	"strings"
)

// DetailLine is one rendered field of the ticket summary.
type DetailLine struct {
	Name  string
	Value string
}

// SummaryLines renders the collected details in the fixed per-reason order
// used by the finalized ticket message. Keys outside the draft's path are
// never rendered.
func SummaryLines(d *Draft) []DetailLine {
	var lines []DetailLine

	switch d.Reason {
	case ReasonGiveawayReward, ReasonEventReward:
		rt := d.RewardType()
		lines = append(lines, DetailLine{Name: "Reward Type", Value: rt.Display()})

		switch rt {
		case RewardGiftCard:
			gc := d.GiftCardType()
			lines = append(lines, DetailLine{Name: "Gift Card Type", Value: gc.Display()})
			switch {
			case gc == GiftCardSteam && d.Detail(DetailSteamID) != "":
				lines = append(lines, DetailLine{Name: "Steam ID", Value: d.Detail(DetailSteamID)})
			case gc == GiftCardOther && d.Detail(DetailOtherGiftCard) != "":
				lines = append(lines, DetailLine{Name: "Gift Card Details", Value: d.Detail(DetailOtherGiftCard)})
			}
		case RewardPaypal:
			if d.Detail(DetailPaypalID) != "" {
				lines = append(lines, DetailLine{Name: "PayPal Email", Value: d.Detail(DetailPaypalID)})
			}
		case RewardOther:
			if d.Detail(DetailOtherReward) != "" {
				lines = append(lines, DetailLine{Name: "Reward Details", Value: d.Detail(DetailOtherReward)})
			}
		}

	case ReasonSupport:
		if d.Detail(DetailSupport) != "" {
			lines = append(lines, DetailLine{Name: "Issue Description", Value: d.Detail(DetailSupport)})
		}

	case ReasonOther:
		if d.Detail(DetailOther) != "" {
			lines = append(lines, DetailLine{Name: "Request Details", Value: d.Detail(DetailOther)})
		}
	}

	return lines
}

// SummaryContent builds the consolidated ticket message posted at
// finalization. The user mention is supplied by the presentation layer.
func SummaryContent(d *Draft, number int, userMention string) string {
	var b strings.Builder

	proof := ""
	if d.Reason.IsReward() {
		proof = "\n\n**Please attach proof of your participation by sending an image in this channel.**"
	}

	fmt.Fprintf(&b, "Hello %s, thank you for creating a ticket.%s\n\n**Ticket Details:**\n", userMention, proof)
	fmt.Fprintf(&b, "- **Ticket #**: %d\n", number)
	fmt.Fprintf(&b, "- **Reason**: %s\n", d.Reason.Display())
	for _, line := range SummaryLines(d) {
		fmt.Fprintf(&b, "- **%s**: %s\n", line.Name, line.Value)
	}
	b.WriteString("A staff member will assist you shortly.\n\n")
	b.WriteString("You can close this ticket when your issue is resolved by clicking the button below.")

	return b.String()
}
