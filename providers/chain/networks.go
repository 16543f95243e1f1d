package chain

import "math/big"

// Currency describes the native currency of a network.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Network is a static description of a supported ledger network. Networks are
// assembled once at startup and never mutated.
type Network struct {
	ChainID        int64    `json:"chain_id"`
	Name           string   `json:"name"`
	Currency       Currency `json:"currency"`
	RPCURLs        []string `json:"rpc_urls"`
	WSURLs         []string `json:"ws_urls"`
	ExplorerURL    string   `json:"explorer_url"`
	ExplorerAPIURL string   `json:"explorer_api_url"`
	Testnet        bool     `json:"testnet"`
}

var CitreaTestnet = Network{
	ChainID: 5115,
	Name:    "Citrea Chain Testnet",
	Currency: Currency{
		Name:     "CBTC",
		Symbol:   "CBTC",
		Decimals: 18,
	},
	RPCURLs:        []string{"https://rpc.testnet.citrea.xyz/"},
	WSURLs:         []string{"wss://ws.testnet.citrea.xyz"},
	ExplorerURL:    "https://explorer.testnet.citrea.xyz",
	ExplorerAPIURL: "https://explorer.testnet.citrea.xyz/api",
	Testnet:        true,
}

// SupportedNetworks is the set of networks the gift contract is deployed on.
var SupportedNetworks = []Network{CitreaTestnet}

func NetworkByID(chainID int64) (Network, bool) {
	for _, n := range SupportedNetworks {
		if n.ChainID == chainID {
			return n, true
		}
	}
	return Network{}, false
}

func IsSupported(chainID *big.Int) bool {
	if chainID == nil || !chainID.IsInt64() {
		return false
	}
	_, ok := NetworkByID(chainID.Int64())
	return ok
}
