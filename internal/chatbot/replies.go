package chatbot

import (
	"fmt"

	"github.com/spec-kit/chatbot-service/internal/domain"
)

// ReplyGreeting is sent once when a chat connection opens, before any
// inbound message is processed.
const ReplyGreeting = "Hello! I can help with:\n\n" +
	"1. Menu\n2. Hours\n3. Location\n4. Help (Feedback and Complaint)\n\n" +
	"What would you like?"

// ReplyTerminal ends a conversation. The channel adapter closes the
// outbound side after sending this exact string.
const ReplyTerminal = "Thank you for chatting with us! Have a great day!"

// ReplyRetry is the degraded answer for internal failures. The session is
// left at its pre-failure step so the user can retry.
const ReplyRetry = "Please try again."

// ReplyPermissionDenied is sent before closing a stream whose first frame
// carried a bad credential.
const ReplyPermissionDenied = "Permission denied."

const replyDefaultMenu = "I can help with:\n\n" +
	"1. Menu\n2. Hours\n3. Location\n4. Help (Feedback and Complaint)\n\n" +
	"What would you like?"

const replyContinueMenu = "Great! What else can I help you with?\n\n" +
	"1. Menu\n2. Hours\n3. Location\n4. Help (Feedback and Complaint)\n\n" +
	"What would you like?"

const replyContinuationPrompt = "Please answer with 'yes' to continue chatting or 'no' to end the conversation."

const replyAskFeedbackType = "Would you like to provide feedback or report a complaint?"

const branchList = "1. " + BranchMilleniumWalkway + "\n" +
	"2. " + BranchCharlotteWay + "\n" +
	"3. " + BranchDundrum + "\n" +
	"4. " + BranchLiffeyValley

const replyAskLocation = "Please select a location:\n\n" + branchList

const replyInvalidLocation = "Please select a valid location:\n\n" + branchList

const replyInvalidEmail = "That doesn't look like a valid email. Please try again:"

const infoFollowUp = "Would you like to know our hours, location or help (feedback or complaint)?"

const replyMenuInfo = "Our delicious menu includes:\n\n" +
	"Chicken Burgers\n" +
	"OG 14.00\n" +
	"Nashville Hot Chick 14.95\n" +
	"Wild Thing 14.95\n" +
	"Honey Baby 14.95\n" +
	"GOAT 14.95\n" +
	"Heart Breaker 14.50\n" +
	"Side Chick 14.00\n\n" +
	"Tenders\n" +
	"Nashville Tender 10.95\n" +
	"Love Me Ranch Tender 10.95\n" +
	"Love Me My Way 10.95\n" +
	"Love Me Sweetie 10.95\n" +
	"Double Stack 19.95\n\n" +
	"Sides\n" +
	"Mac And Cheese 9.95\n" +
	"Fries 5.95\n" +
	"Tator Tots 5.95\n" +
	"Loaded Fries/Tots 9.95\n" +
	"Crack Fries/Tots 9.95\n\n" +
	"Drinks\n" +
	"Coke 3.10\n" +
	"Coke Zero/Diet 3.00\n" +
	"Fanta Orange/Lemon 3.00\n" +
	"7UP 3.00\n\n" +
	infoFollowUp

const replyHoursInfo = "Our opening hours:\n\n" +
	"Sunday-Thursday: 12pm-9pm\n" +
	"Friday-Saturday: 12pm-10pm\n\n" +
	infoFollowUp

const replyLocationsInfo = "Find us at:\n\n" + branchList + "\n\n" + infoFollowUp

// Suggestions is the fixed list served by the suggestions endpoint.
var Suggestions = []string{
	"Ask about today's menu",
	"Check opening hours",
	"Find your nearest branch",
}

func replyDescribePrompt(feedbackType domain.FeedbackType) string {
	return fmt.Sprintf("Please describe your %s in detail:", feedbackType)
}

func replyMessageAck(label domain.SentimentLabel) string {
	reply := "Thank you for your message. "
	switch label {
	case domain.SentimentNegative:
		reply += "We're sorry to hear about your experience. "
	case domain.SentimentPositive:
		reply += "We're happy you enjoyed your visit! "
	}
	return reply + "Could you please provide your email so our manager can follow up?"
}

func replyTicketSummary(ticket *domain.Ticket) string {
	return fmt.Sprintf("Ticket %s submitted.\n"+
		"Type: %s\n"+
		"Location: %s\n"+
		"Message: %s\n"+
		"Email: %s\n"+
		"Sentiment: %s\n\n"+
		"Your %s has been sent to the branch manager. They'll contact you soon.\n\n"+
		"Would you like to continue chatting? (yes/no)",
		ticket.ID, ticket.FeedbackType, ticket.Location, ticket.Message,
		ticket.Email, ticket.Sentiment, ticket.FeedbackType)
}
