package protocol

// 玩家本局的结束方式
type WinType string

const (
	WinTypeNone    WinType = "none"    // 没胡
	WinTypeZimo    WinType = "zimo"    // 自摸
	WinTypeDianPao WinType = "dianpao" // 点炮胡
)

// 杠的类型
type KongEventType string

const (
	KongDianGang KongEventType = "dian_gang" // 点杠
	KongBuGang   KongEventType = "bu_gang"   // 补杠
	KongAnGang   KongEventType = "an_gang"   // 暗杠
)

// 规则分类, 用于前端分组展示
type RuleCategory string

const (
	CategoryHandType RuleCategory = "hand_type" // 平胡/大对子/清一色/七对...
	CategoryExtra    RuleCategory = "extra"     // 带根...
	CategorySpecial  RuleCategory = "special"   // 抢杠胡/杠上炮/海底捞月...
	CategoryPenalty  RuleCategory = "penalty"   // 花猪/相公...
)

// 基础规则(非算分)所属的教学章节
type BasicRuleSection string

const (
	SectionBeforeGame     BasicRuleSection = "before_game"
	SectionDuringTurn     BasicRuleSection = "during_turn"
	SectionWinningScoring BasicRuleSection = "winning_scoring"
)
