package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

// ==================== 相位切换规则测试 ====================

func TestNextCycle_BaseToElevated(t *testing.T) {
	original := decimal.RequireFromString("19.99")

	price, phase := NextCycle(original, PhaseBase, DefaultOffset)

	if price.StringFixed(2) != "21.99" {
		t.Errorf("price = %s, want 21.99", price.StringFixed(2))
	}
	if phase != PhaseElevated {
		t.Errorf("phase = %s, want %s", phase, PhaseElevated)
	}
}

func TestNextCycle_ElevatedToBase(t *testing.T) {
	original := decimal.RequireFromString("19.99")

	price, phase := NextCycle(original, PhaseElevated, DefaultOffset)

	if price.StringFixed(2) != "17.99" {
		t.Errorf("price = %s, want 17.99", price.StringFixed(2))
	}
	if phase != PhaseBase {
		t.Errorf("phase = %s, want %s", phase, PhaseBase)
	}
}

// 连续多轮振荡必须始终以原价为基准，不允许在 CurrentPrice 上累计偏移
func TestNextCycle_NoDriftOverManyCycles(t *testing.T) {
	original := decimal.RequireFromString("19.99")
	phase := PhaseBase

	var price decimal.Decimal
	for i := 0; i < 100; i++ {
		price, phase = NextCycle(original, phase, DefaultOffset)

		want := "21.99"
		if phase == PhaseBase {
			want = "17.99"
		}
		if price.StringFixed(2) != want {
			t.Fatalf("第 %d 轮 price = %s, want %s", i+1, price.StringFixed(2), want)
		}
	}
}

// 相同输入重复计算结果一致（纯函数）
func TestNextCycle_Deterministic(t *testing.T) {
	original := decimal.RequireFromString("10.50")

	p1, ph1 := NextCycle(original, PhaseBase, DefaultOffset)
	p2, ph2 := NextCycle(original, PhaseBase, DefaultOffset)

	if !p1.Equal(p2) || ph1 != ph2 {
		t.Errorf("结果不一致: (%s,%s) vs (%s,%s)", p1, ph1, p2, ph2)
	}
}

func TestNextCycle_CustomOffset(t *testing.T) {
	original := decimal.RequireFromString("100.00")
	offset := decimal.RequireFromString("5.50")

	price, _ := NextCycle(original, PhaseBase, offset)
	if price.StringFixed(2) != "105.50" {
		t.Errorf("price = %s, want 105.50", price.StringFixed(2))
	}

	price, _ = NextCycle(original, PhaseElevated, offset)
	if price.StringFixed(2) != "94.50" {
		t.Errorf("price = %s, want 94.50", price.StringFixed(2))
	}
}

func TestNextCycle_Rounding(t *testing.T) {
	original := decimal.RequireFromString("9.999")
	offset := decimal.RequireFromString("0.005")

	price, _ := NextCycle(original, PhaseBase, offset)
	if price.StringFixed(2) != "10.00" {
		t.Errorf("price = %s, want 10.00", price.StringFixed(2))
	}
}
