package handlers

import (
	"fmt"

	"github.com/cbodonnell/digipet/pkg/digipet"
)

const (
	WelcomeMessage      = "Welcome to Digipet, the digital pet game! Keep your pet happy, healthy and well-disciplined to win. If in doubt, check out the /instructions endpoint!"
	InstructionsMessage = "Check your digipet's stats with /digipet, then look after it with /digipet/[action] where action is one of hatch, walk, train, feed, ignore or rehome. For example, try /digipet/walk to walk your digipet!"

	DigipetPresentMessage = "Your digipet is waiting for you!"
	DigipetAbsentMessage  = "You don't have a digipet yet! Try hatching one with /digipet/hatch"
)

var legalMessages = map[digipet.Action]string{
	digipet.ActionHatch:  "You have successfully hatched an adorable new digipet. Just the cutest.",
	digipet.ActionWalk:   "You walked your digipet. It looks happier now!",
	digipet.ActionTrain:  "You trained your digipet. It looks more disciplined now.",
	digipet.ActionFeed:   "You fed your digipet. It looks more nourished, if a little less disciplined.",
	digipet.ActionIgnore: "You ignored your digipet!! It's very sad now.",
	digipet.ActionRehome: "You rehomed your digipet. You can hatch a new one whenever you're ready.",
}

// actionMessage returns the message shown after attempting action.
func actionMessage(action digipet.Action, legal bool) string {
	if legal {
		return legalMessages[action]
	}
	switch action {
	case digipet.ActionHatch:
		return "You can't hatch a digipet now because you already have one!"
	case digipet.ActionRehome:
		return "You can't rehome a digipet you don't have! Try hatching one with /digipet/hatch"
	default:
		return fmt.Sprintf("You don't have a digipet to %s! Try hatching one with /digipet/hatch", action)
	}
}
