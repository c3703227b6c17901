package domain

import (
	"strings"
	"time"
)

// Step identifies what input a conversation is currently waiting for.
type Step int

const (
	// StepNone is the zero value: no flow in progress.
	StepNone Step = iota

	// Registration sub-flow (unregistered actors only).
	StepRegisterName
	StepRegisterPhone

	// Entry form, in strict order.
	StepType
	StepCategory
	StepProject
	StepProjectName // free-text project after choosing "other"
	StepCurrency
	StepAmount
	StepPayType
	StepComment
	StepConfirm

	// Admin catalog sub-flows.
	StepAdminAddCategory
	StepAdminAddPayType
	StepAdminRenameCategory
	StepAdminRenamePayType
)

// Conversation is the per-actor in-memory state. It is not persisted:
// in-flight forms are abandoned on process restart.
type Conversation struct {
	Step  Step
	Draft Record

	// RegisterName holds the name entered during registration until the
	// phone contact arrives.
	RegisterName string

	// RenameFrom holds the old catalog name during an admin rename.
	RenameFrom string
}

// Begin discards any draft and enters the first form step.
func (c *Conversation) Begin() {
	*c = Conversation{Step: StepType}
}

// Reset clears the conversation entirely.
func (c *Conversation) Reset() {
	*c = Conversation{}
}

// StartRegistration enters the registration sub-flow.
func (c *Conversation) StartRegistration() {
	*c = Conversation{Step: StepRegisterName}
}

// SetRegisterName stores the trimmed name and advances to the phone step.
// Empty input is rejected so the handler re-prompts.
func (c *Conversation) SetRegisterName(text string) bool {
	name := strings.TrimSpace(text)
	if c.Step != StepRegisterName || name == "" {
		return false
	}
	c.RegisterName = name
	c.Step = StepRegisterPhone
	return true
}

// SetType records the flow direction.
func (c *Conversation) SetType(t FlowType) bool {
	if c.Step != StepType {
		return false
	}
	c.Draft.Type = t
	c.Step = StepCategory
	return true
}

// SetCategory accepts the selected category name at face value. The
// keyboard was rendered from a live catalog read, but the name is not
// re-validated here: a selection from a keyboard rendered before an
// admin deleted the entry is still accepted.
func (c *Conversation) SetCategory(name string) bool {
	if c.Step != StepCategory {
		return false
	}
	c.Draft.Category = name
	c.Step = StepProject
	return true
}

// ChooseProject records one of the fixed project options.
func (c *Conversation) ChooseProject(name string) bool {
	if c.Step != StepProject {
		return false
	}
	c.Draft.Project = name
	c.Step = StepCurrency
	return true
}

// ChooseOtherProject switches to free-text project entry.
func (c *Conversation) ChooseOtherProject() bool {
	if c.Step != StepProject {
		return false
	}
	c.Step = StepProjectName
	return true
}

// SetProjectName stores the typed project name.
func (c *Conversation) SetProjectName(text string) bool {
	name := strings.TrimSpace(text)
	if c.Step != StepProjectName || name == "" {
		return false
	}
	c.Draft.Project = name
	c.Step = StepCurrency
	return true
}

// SetCurrency records the amount currency.
func (c *Conversation) SetCurrency(cur Currency) bool {
	if c.Step != StepCurrency {
		return false
	}
	c.Draft.Currency = cur
	c.Step = StepAmount
	return true
}

// SetAmount validates and stores the amount. Invalid input leaves the
// step unchanged so the user stays on the amount prompt.
func (c *Conversation) SetAmount(text string) bool {
	if c.Step != StepAmount || !ValidAmount(text) {
		return false
	}
	c.Draft.Amount = strings.TrimSpace(text)
	c.Step = StepPayType
	return true
}

// SetPayType accepts the selected payment type, face value as with
// SetCategory.
func (c *Conversation) SetPayType(name string) bool {
	if c.Step != StepPayType {
		return false
	}
	c.Draft.PayType = name
	c.Step = StepComment
	return true
}

// SetComment stores the comment verbatim, stamps the record and moves to
// confirmation.
func (c *Conversation) SetComment(text string, now time.Time) bool {
	if c.Step != StepComment {
		return false
	}
	c.Draft.Comment = text
	c.Draft.CreatedAt = now
	c.Step = StepConfirm
	return true
}

// SkipComment stores the placeholder comment.
func (c *Conversation) SkipComment(now time.Time) bool {
	return c.SetComment(CommentPlaceholder, now)
}

// Confirming reports whether the conversation is at the confirmation step.
func (c *Conversation) Confirming() bool {
	return c.Step == StepConfirm
}

// StartAdminAdd enters a catalog add sub-flow.
func (c *Conversation) StartAdminAdd(step Step) {
	*c = Conversation{Step: step}
}

// StartAdminRename enters a catalog rename sub-flow, remembering the old
// name.
func (c *Conversation) StartAdminRename(step Step, oldName string) {
	*c = Conversation{Step: step, RenameFrom: oldName}
}
