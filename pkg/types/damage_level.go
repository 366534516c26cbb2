package types

// DamageLevel 受伤指示器的严重程度
// 与剩余生命数一一对应，生命越少指示越强烈
type DamageLevel int

const (
	// DamageNone 无指示（生命数超出已知范围）
	DamageNone DamageLevel = iota
	// DamageLow 轻度（满血）
	DamageLow
	// DamageMedium 中度（已失去生命，但不止剩一条）
	DamageMedium
	// DamageHigh 重度（只剩 1 条命）
	DamageHigh
)

// DamageLevelFor 根据剩余生命数和最大生命数返回受伤指示等级
//
// 最后一条命为 High，满血为 Low，介于两者之间为 Medium。
// 最大生命为 3 时即 3→Low, 2→Medium, 1→High。
// lives 超出 [1, maxLives] 时返回 None
func DamageLevelFor(lives, maxLives int) DamageLevel {
	switch {
	case lives < 1 || lives > maxLives:
		return DamageNone
	case lives == 1:
		return DamageHigh
	case lives == maxLives:
		return DamageLow
	default:
		return DamageMedium
	}
}

// String 返回受伤等级的字符串表示
func (d DamageLevel) String() string {
	switch d {
	case DamageLow:
		return "Low"
	case DamageMedium:
		return "Medium"
	case DamageHigh:
		return "High"
	default:
		return "None"
	}
}
