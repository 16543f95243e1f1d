package chain

// GiftABI is the subset of the gift escrow contract this service calls.
const GiftABI = `[
  {
    "type": "function",
    "name": "createGiftCard",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "recipient", "type": "address"},
      {"name": "amount", "type": "uint256"},
      {"name": "mail", "type": "string"}
    ],
    "outputs": [{"name": "cardId", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "redeemGiftCard",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "cardId", "type": "uint256"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getGiftCard",
    "stateMutability": "view",
    "inputs": [{"name": "cardId", "type": "uint256"}],
    "outputs": [
      {"name": "poolBalance", "type": "uint256"},
      {"name": "owner", "type": "address"},
      {"name": "recipient", "type": "address"},
      {"name": "mail", "type": "string"},
      {"name": "redeemed", "type": "bool"}
    ]
  },
  {
    "type": "event",
    "name": "GiftCardCreated",
    "inputs": [
      {"name": "cardId", "type": "uint256", "indexed": true},
      {"name": "owner", "type": "address", "indexed": true},
      {"name": "recipient", "type": "address", "indexed": true},
      {"name": "amount", "type": "uint256", "indexed": false}
    ],
    "anonymous": false
  }
]`
