package models

import "time"

// Proposal is a projection of a governance proposal. Terminal once Executed.
type Proposal struct {
	ProposalID    uint64    `json:"proposalId"`
	PropertyID    uint64    `json:"propertyId"`
	Description   string    `json:"description"`
	CostEstimate  string    `json:"costEstimate"`
	VotingEndTime time.Time `json:"votingEndTime"`
	VotesFor      string    `json:"votesFor"`
	VotesAgainst  string    `json:"votesAgainst"`
	Executed      bool      `json:"executed"`
	Passed        bool      `json:"passed"`
	HasVoted      bool      `json:"hasVoted"`
}

// CreateProposalRequest carries the proposal creation form fields.
type CreateProposalRequest struct {
	PropertyID    uint64 `json:"propertyId" binding:"required"`
	Description   string `json:"description" binding:"required"`
	CostEstimate  string `json:"costEstimate" binding:"required"`
	VotingPeriodS int64  `json:"votingPeriodSeconds" binding:"required"`
}

// VoteRequest carries a single vote.
type VoteRequest struct {
	Support bool `json:"support"`
}

// GrantRoleRequest grants a named role to an account.
type GrantRoleRequest struct {
	Role    string `json:"role" binding:"required"`
	Account string `json:"account" binding:"required"`
}
