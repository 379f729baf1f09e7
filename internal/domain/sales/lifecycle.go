package sales

// 销售单生命周期
// 设计说明:
// 1. 锁定规则集中在Permissions一处,所有调用方(应用层、接口层、
//    发票导出)消费同一份能力集,不得各自散落status判断
// 2. 状态由收款驱动:结清→Lunas;赊销(K)未结清→Angsuran;
//    现金(T)部分收款仍视为Pesanan;收款清零→回到Pesanan
// 3. Lunas是唯一全锁状态:明细、运单、收款全部冻结

// Permissions 状态能力集
type Permissions struct {
	CanEditItems    bool `json:"can_edit_items"`    // 明细可改(仅Pesanan)
	CanEditShipping bool `json:"can_edit_shipping"` // 运单可改(非Lunas)
	CanEditPayments bool `json:"can_edit_payments"` // 收款可改(非Lunas)
}

// PermissionsFor 按状态计算能力集
func PermissionsFor(status Status) Permissions {
	return Permissions{
		CanEditItems:    status == StatusPesanan,
		CanEditShipping: status != StatusLunas,
		CanEditPayments: status != StatusLunas,
	}
}

// Permissions 当前销售单的能力集
func (t *Transaction) Permissions() Permissions {
	return PermissionsFor(t.Status)
}

// CanAddPayment 是否可新增收款
// 在收款可改的基础上,还要求存在正的剩余应收
func (t *Transaction) CanAddPayment() bool {
	return t.Permissions().CanEditPayments && RemainingBalance(t.Total(), t.Payments) > 0
}

// RefreshStatus 按收款进度重算状态
// 规则:
// - 余额为0且存在收款 → Lunas
// - 赊销(K)有收款未结清 → Angsuran(分期只属于赊销)
// - 现金(T)部分收款或没有收款 → Pesanan
func (t *Transaction) RefreshStatus() {
	if len(t.Payments) == 0 {
		t.Status = StatusPesanan
		return
	}

	if RemainingBalance(t.Total(), t.Payments) == 0 {
		t.Status = StatusLunas
		return
	}

	if t.PaymentType == PaymentTypeCredit {
		t.Status = StatusAngsuran
		return
	}

	t.Status = StatusPesanan
}
