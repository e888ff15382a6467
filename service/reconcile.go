package service

import (
	"Brandi/pkg/errs"
)

var ErrDuplicateOption = errs.Invalid("DUPLICATE_OPTION")

// OptionKey 选项的身份是颜色与尺码的组合，库存数不参与
type OptionKey struct {
	ColorID uint64
	SizeID  uint64
}

type ExistingOption struct {
	ProductOptionNo uint64
	Key             OptionKey
	Quantity        int
}

type DesiredOption struct {
	Key      OptionKey
	Quantity int
}

type QuantityChange struct {
	ProductOptionNo uint64
	Key             OptionKey
	From            int
	To              int
}

// OptionPlan 修改商品时对选项的处理：删除、新增、只改库存
type OptionPlan struct {
	Delete []ExistingOption
	Insert []DesiredOption
	Revise []QuantityChange
}

func (p *OptionPlan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Insert) == 0 && len(p.Revise) == 0
}

// PlanOptions 对比已有选项与目标选项。结果按输入顺序排列，不访问数据库。
func PlanOptions(existing []ExistingOption, desired []DesiredOption) (*OptionPlan, error) {
	want := make(map[OptionKey]int, len(desired))
	for _, d := range desired {
		if _, dup := want[d.Key]; dup {
			return nil, ErrDuplicateOption.Withf("color_id=%d size_id=%d", d.Key.ColorID, d.Key.SizeID)
		}
		want[d.Key] = d.Quantity
	}

	plan := &OptionPlan{}
	have := make(map[OptionKey]struct{}, len(existing))
	for _, e := range existing {
		have[e.Key] = struct{}{}
		q, ok := want[e.Key]
		switch {
		case !ok:
			plan.Delete = append(plan.Delete, e)
		case q != e.Quantity:
			plan.Revise = append(plan.Revise, QuantityChange{
				ProductOptionNo: e.ProductOptionNo,
				Key:             e.Key,
				From:            e.Quantity,
				To:              q,
			})
		}
	}
	for _, d := range desired {
		if _, ok := have[d.Key]; !ok {
			plan.Insert = append(plan.Insert, d)
		}
	}
	return plan, nil
}
