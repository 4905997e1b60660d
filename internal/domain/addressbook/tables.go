package addressbook

// UniswapRouter is the UniswapV2 router that ZapMigrate migrates liquidity from
var UniswapRouter = NewTable("uniswap router", map[string]string{
	"1":     "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
	"3":     "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
	"4":     "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
	"5":     "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
	"42":    "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
	"1287":  "0x2823caf546C7d09a4832bd1da14f2C6b6E665e05",
	"31337": "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
})

// WETH is the wrapped native token per chain
var WETH = NewTable("weth", map[string]string{
	"1":     "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
	"3":     "0xc778417E063141139Fce010982780140Aa0cD5Ab",
	"4":     "0xc778417E063141139Fce010982780140Aa0cD5Ab",
	"5":     "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6",
	"10":    "0x4200000000000000000000000000000000000006",
	"42":    "0xd0A1E359811322d97991E03f863a0C30C2cF029C",
	"56":    "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c",
	"100":   "0xe91D153E0b41518A2Ce8Dd3D7944Fa863463a97d",
	"137":   "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270",
	"250":   "0x21be370D5312f44cB42ce377BC9b8a0cEF1A4C83",
	"42161": "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
	"43114": "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7",
})

// GZap is the reward token already live on each chain
var GZap = NewTable("gzap", map[string]string{
	"1":     "0x6B3595068778DD592e39A122f4f5a5cF09C90fE2",
	"3":     "0x0769fd68dFb93167989C6f7254cd0D766Fb2841F",
	"4":     "0x0769fd68dFb93167989C6f7254cd0D766Fb2841F",
	"5":     "0x0769fd68dFb93167989C6f7254cd0D766Fb2841F",
	"42":    "0x0769fd68dFb93167989C6f7254cd0D766Fb2841F",
	"56":    "0x947950BcC74888a40Ffa2593C5798F11Fc9124C4",
	"100":   "0x2995D1317DcD4f0aB89f4AE60F3f020A4F17C7CE",
	"137":   "0x0b3F868E0BE5597D5DB7fEB59E1CADBb0fdDa50a",
	"250":   "0xae75A438b2E0cB8Bb01Ec1E1e376De11D44477CC",
	"42161": "0xd4d42F0b6DEF4CE0383636770eF773390d85c61A",
	"43114": "0x37B608519F91f70F2EeB0e5Ed9AF4061722e4F76",
})

// Tables returns every table, for listing coverage per chain
func Tables() []Table {
	return []Table{UniswapRouter, WETH, GZap}
}
