package integration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 采购模块集成测试
//
// 采购单的关键行为:
// 1. 创建为Pending,不碰库存
// 2. 入库(Pending→Completed)才按明细加库存,且只加这一次
// 3. 取消是纯状态变更
// 4. 进货单价不得高于图书当前售价

// createPurchase 提交采购单,断言成功并返回详情
func createPurchase(t *testing.T, token string, req map[string]interface{}) *PurchaseData {
	t.Helper()

	resp := PostJSON(t, BaseURL()+"/purchases", req, token)
	require.Equal(t, 0, resp.Code, "创建采购单失败: %s", resp.Message)

	var data PurchaseData
	resp.Unmarshal(t, &data)
	require.NotZero(t, data.ID, "采购单ID应该大于0")
	return &data
}

func TestPurchaseCreate(t *testing.T) {
	SkipIfServerDown(t)
	token := LoginTestAdmin(t)

	t.Run("创建为Pending且不碰库存", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 15000, 10)
		supplierID := CreateTestPublisher(t, token)

		data := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"note":          "pengadaan rutin",
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 20, "unit_price": 9000},
			},
		})

		assert.Equal(t, 0, data.Status, "新建采购单应为Pending")
		assert.NotEmpty(t, data.TransactionNo, "采购单号不应为空")
		assert.Equal(t, 10, GetBookStock(t, token, bookID), "Pending不应加库存")

		t.Logf("✓ 采购单创建: %s, 库存未动", data.TransactionNo)
	})

	t.Run("单价缺省取采购参考价", func(t *testing.T) {
		// CreateTestBook的采购参考价 = 售价×60%
		bookID := CreateTestBook(t, token, "LKS", 10000, 5)
		supplierID := CreateTestPublisher(t, token)

		data := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 10},
			},
		})

		require.Len(t, data.Items, 1)
		assert.Equal(t, int64(6000), data.Items[0].UnitPrice, "缺省单价应取图书采购参考价")

		t.Logf("✓ 缺省单价: %d", data.Items[0].UnitPrice)
	})

	t.Run("进价高于售价应拒绝", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 5)
		supplierID := CreateTestPublisher(t, token)

		resp := PostJSON(t, BaseURL()+"/purchases", map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 10001},
			},
		}, token)

		assert.Equal(t, 40004, resp.Code, "进价超过售价应被拒绝")
		t.Logf("✓ 进价超限正确被拒绝: %s", resp.Message)
	})

	t.Run("采购数量不受库存上限", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 2)
		supplierID := CreateTestPublisher(t, token)

		data := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 500, "unit_price": 5000},
			},
		})

		assert.Equal(t, 500, data.Items[0].Quantity, "采购数量不做收敛")
		t.Logf("✓ 采购500本未被收敛")
	})

	t.Run("供应商不存在应失败", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 5)

		resp := PostJSON(t, BaseURL()+"/purchases", map[string]interface{}{
			"supplier_id":   999999,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 5000},
			},
		}, token)

		assert.NotEqual(t, 0, resp.Code, "供应商不存在应该失败")
		t.Logf("✓ 不存在的供应商正确被拒绝: %s", resp.Message)
	})
}

func TestPurchaseComplete(t *testing.T) {
	SkipIfServerDown(t)
	token := LoginTestAdmin(t)

	t.Run("入库加库存", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 10)
		supplierID := CreateTestPublisher(t, token)

		p := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 6000},
			},
		})

		resp := PostJSON(t, fmt.Sprintf("%s/purchases/%d/complete", BaseURL(), p.ID), nil, token)
		require.Equal(t, 0, resp.Code, "入库失败: %s", resp.Message)

		var data PurchaseData
		resp.Unmarshal(t, &data)
		assert.Equal(t, 1, data.Status, "入库后应为Completed")
		assert.Equal(t, 15, GetBookStock(t, token, bookID), "入库后库存10+5")

		t.Logf("✓ 入库成功: 库存10 → 15")
	})

	t.Run("重复入库拒绝且库存只加一次", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 10)
		supplierID := CreateTestPublisher(t, token)

		p := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 6000},
			},
		})

		url := fmt.Sprintf("%s/purchases/%d/complete", BaseURL(), p.ID)
		first := PostJSON(t, url, nil, token)
		require.Equal(t, 0, first.Code, "首次入库失败: %s", first.Message)

		second := PostJSON(t, url, nil, token)
		assert.Equal(t, 40002, second.Code, "重复入库应返回锁定错误")
		assert.Equal(t, 15, GetBookStock(t, token, bookID), "库存只应加一次")

		t.Logf("✓ 重复入库被拒绝,库存保持15")
	})

	t.Run("已取消的单拒绝入库", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 10)
		supplierID := CreateTestPublisher(t, token)

		p := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 6000},
			},
		})

		cancel := PostJSON(t, fmt.Sprintf("%s/purchases/%d/cancel", BaseURL(), p.ID), nil, token)
		require.Equal(t, 0, cancel.Code, "取消失败: %s", cancel.Message)

		complete := PostJSON(t, fmt.Sprintf("%s/purchases/%d/complete", BaseURL(), p.ID), nil, token)
		assert.Equal(t, 40002, complete.Code, "已取消的单不应再入库")
		assert.Equal(t, 10, GetBookStock(t, token, bookID), "取消与拒绝的入库都不动库存")

		t.Logf("✓ 已取消的单正确拒绝入库")
	})
}

func TestPurchaseEditAndDelete(t *testing.T) {
	SkipIfServerDown(t)
	token := LoginTestAdmin(t)

	t.Run("Pending可编辑", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 10)
		supplierID := CreateTestPublisher(t, token)

		p := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 6000},
			},
		})

		resp := PutJSON(t, fmt.Sprintf("%s/purchases/%d", BaseURL(), p.ID), map[string]interface{}{
			"note": "revisi jumlah",
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 8, "unit_price": 5500},
			},
		}, token)
		require.Equal(t, 0, resp.Code, "编辑采购单失败: %s", resp.Message)

		var data PurchaseData
		resp.Unmarshal(t, &data)
		require.Len(t, data.Items, 1)
		assert.Equal(t, 8, data.Items[0].Quantity)
		assert.Equal(t, int64(5500), data.Items[0].UnitPrice)

		t.Logf("✓ Pending采购单编辑成功")
	})

	t.Run("Pending可删除", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 10)
		supplierID := CreateTestPublisher(t, token)

		p := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 6000},
			},
		})

		del := DeleteJSON(t, fmt.Sprintf("%s/purchases/%d", BaseURL(), p.ID), token)
		require.Equal(t, 0, del.Code, "删除采购单失败: %s", del.Message)

		check := GetJSON(t, fmt.Sprintf("%s/purchases/%d", BaseURL(), p.ID), token)
		assert.Equal(t, 40400, check.Code, "删除后查询应返回不存在")

		t.Logf("✓ Pending采购单删除成功")
	})

	t.Run("终态拒绝编辑和删除", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "LKS", 10000, 10)
		supplierID := CreateTestPublisher(t, token)

		p := createPurchase(t, token, map[string]interface{}{
			"supplier_id":   supplierID,
			"purchase_date": today(),
			"items": []map[string]interface{}{
				{"book_id": bookID, "quantity": 5, "unit_price": 6000},
			},
		})

		complete := PostJSON(t, fmt.Sprintf("%s/purchases/%d/complete", BaseURL(), p.ID), nil, token)
		require.Equal(t, 0, complete.Code, "入库失败: %s", complete.Message)

		upd := PutJSON(t, fmt.Sprintf("%s/purchases/%d", BaseURL(), p.ID), map[string]interface{}{
			"note": "tidak boleh",
		}, token)
		assert.Equal(t, 40002, upd.Code, "Completed后编辑应被锁定")

		del := DeleteJSON(t, fmt.Sprintf("%s/purchases/%d", BaseURL(), p.ID), token)
		assert.Equal(t, 40002, del.Code, "Completed后删除应被锁定")
		assert.Equal(t, 15, GetBookStock(t, token, bookID), "锁定操作不应动库存")

		t.Logf("✓ 终态锁定: 编辑/删除均被拒绝")
	})
}
