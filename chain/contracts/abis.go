// Package contracts holds the typed bindings for the on-chain collaborators.
// Argument order and types in the ABI strings below are fixed by the external
// contracts and must be matched exactly at every call site.
package contracts

// RegistryABI covers the property/token registry (SmartStayToken) functions
// the gateway consumes.
const RegistryABI = `[
{"type":"function","name":"getNextPropertyId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"properties","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"name","type":"string"},{"name":"location","type":"string"},{"name":"pricePerWeek","type":"uint256"},{"name":"amenities","type":"string"},{"name":"description","type":"string"},{"name":"verified","type":"bool"},{"name":"active","type":"bool"}]},
{"type":"function","name":"propertyOwners","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"getNextTokenId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"tokenToPropertyId","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"tokenToYear","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"tokenToWeekNumber","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"unitsOwned","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"propertyId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"createProperty","stateMutability":"nonpayable","inputs":[{"name":"name","type":"string"},{"name":"location","type":"string"},{"name":"pricePerWeek","type":"uint256"},{"name":"amenities","type":"string"},{"name":"description","type":"string"}],"outputs":[]},
{"type":"function","name":"updateProperty","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"},{"name":"name","type":"string"},{"name":"location","type":"string"},{"name":"pricePerWeek","type":"uint256"},{"name":"amenities","type":"string"},{"name":"description","type":"string"}],"outputs":[]},
{"type":"function","name":"verifyProperty","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"mintWeek","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"},{"name":"year","type":"uint256"},{"name":"weekNumber","type":"uint256"},{"name":"vault","type":"address"}],"outputs":[]},
{"type":"function","name":"mintInitialOwnership","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"},{"name":"owners","type":"address[]"},{"name":"amounts","type":"uint256[]"}],"outputs":[]},
{"type":"function","name":"hasRole","stateMutability":"view","inputs":[{"name":"role","type":"bytes32"},{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"grantRole","stateMutability":"nonpayable","inputs":[{"name":"role","type":"bytes32"},{"name":"account","type":"address"}],"outputs":[]}
]`

// VaultABI covers the reservation vault's slot ownership surface.
const VaultABI = `[
{"type":"function","name":"slotOwnership","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"day","type":"uint8"}],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"transferSlot","stateMutability":"nonpayable","inputs":[{"name":"tokenId","type":"uint256"},{"name":"day","type":"uint8"},{"name":"to","type":"address"}],"outputs":[]},
{"type":"function","name":"swapSlots","stateMutability":"nonpayable","inputs":[{"name":"tokenId1","type":"uint256"},{"name":"day1","type":"uint8"},{"name":"tokenId2","type":"uint256"},{"name":"day2","type":"uint8"}],"outputs":[]}
]`

// MarketABI covers the swap/sale/buy marketplace (ReservationSwap).
const MarketABI = `[
{"type":"function","name":"getNextOfferId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"offers","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"offerType","type":"uint8"},{"name":"offeredTokenId","type":"uint256"},{"name":"offeredDay","type":"uint8"},{"name":"targetTokenId","type":"uint256"},{"name":"targetDay","type":"uint8"},{"name":"ethAmount","type":"uint256"},{"name":"offerer","type":"address"},{"name":"isActive","type":"bool"}]},
{"type":"function","name":"createOffer","stateMutability":"payable","inputs":[{"name":"offerType","type":"uint8"},{"name":"offeredTokenId","type":"uint256"},{"name":"offeredDay","type":"uint8"},{"name":"targetTokenId","type":"uint256"},{"name":"targetDay","type":"uint8"},{"name":"ethAmount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"acceptSwapOffer","stateMutability":"payable","inputs":[{"name":"offerId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"cancelOffer","stateMutability":"nonpayable","inputs":[{"name":"offerId","type":"uint256"}],"outputs":[]}
]`

// GovernanceABI covers proposals, voting, and the AccessControl role surface.
const GovernanceABI = `[
{"type":"function","name":"getProposalIdCounter","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getProposal","stateMutability":"view","inputs":[{"name":"proposalId","type":"uint256"}],"outputs":[{"name":"propertyId","type":"uint256"},{"name":"description","type":"string"},{"name":"costEstimate","type":"uint256"},{"name":"votingEndTime","type":"uint256"},{"name":"votesFor","type":"uint256"},{"name":"votesAgainst","type":"uint256"},{"name":"executed","type":"bool"},{"name":"passed","type":"bool"}]},
{"type":"function","name":"hasVoted","stateMutability":"view","inputs":[{"name":"proposalId","type":"uint256"},{"name":"voter","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"createProposal","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"},{"name":"description","type":"string"},{"name":"costEstimate","type":"uint256"},{"name":"votingPeriod","type":"uint256"}],"outputs":[]},
{"type":"function","name":"castVote","stateMutability":"nonpayable","inputs":[{"name":"proposalId","type":"uint256"},{"name":"support","type":"bool"}],"outputs":[]},
{"type":"function","name":"executeProposal","stateMutability":"nonpayable","inputs":[{"name":"proposalId","type":"uint256"}],"outputs":[]}
]`
