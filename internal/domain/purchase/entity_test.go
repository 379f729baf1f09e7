package purchase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{{BookID: 1, Quantity: 5, UnitPrice: 60000}}
}

// TestNewTransaction 创建采购单
func TestNewTransaction(t *testing.T) {
	t.Run("初始状态为Pending", func(t *testing.T) {
		tx, err := NewTransaction("PUR001", 1, time.Now(), "首批进货", testItems())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Equal(t, int64(300000), tx.Total())
	})

	t.Run("明细不能为空", func(t *testing.T) {
		_, err := NewTransaction("PUR002", 1, time.Now(), "", nil)
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("数量必须大于0", func(t *testing.T) {
		_, err := NewTransaction("PUR003", 1, time.Now(), "", []Item{{BookID: 1, Quantity: 0, UnitPrice: 100}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("单价不能为负", func(t *testing.T) {
		_, err := NewTransaction("PUR004", 1, time.Now(), "", []Item{{BookID: 1, Quantity: 1, UnitPrice: -1}})
		assert.ErrorIs(t, err, ErrInvalidUnitPrice)
	})
}

// TestStateMachine 状态机:Pending→Completed / Pending→Cancelled,终态无出口
func TestStateMachine(t *testing.T) {
	t.Run("Pending可完成", func(t *testing.T) {
		tx, _ := NewTransaction("PUR010", 1, time.Now(), "", testItems())
		assert.True(t, tx.CanTransitionTo(StatusCompleted))
		assert.True(t, tx.CanTransitionTo(StatusCancelled))

		require.NoError(t, tx.Complete())
		assert.Equal(t, StatusCompleted, tx.Status)
	})

	t.Run("二次完成被锁定拒绝", func(t *testing.T) {
		tx, _ := NewTransaction("PUR011", 1, time.Now(), "", testItems())
		require.NoError(t, tx.Complete())

		err := tx.Complete()
		assert.ErrorIs(t, err, ErrTransactionLocked)
		assert.Equal(t, StatusCompleted, tx.Status)
	})

	t.Run("已完成不可取消", func(t *testing.T) {
		tx, _ := NewTransaction("PUR012", 1, time.Now(), "", testItems())
		require.NoError(t, tx.Complete())
		assert.ErrorIs(t, tx.Cancel(), ErrTransactionLocked)
	})

	t.Run("已取消不可完成", func(t *testing.T) {
		tx, _ := NewTransaction("PUR013", 1, time.Now(), "", testItems())
		require.NoError(t, tx.Cancel())
		assert.ErrorIs(t, tx.Complete(), ErrTransactionLocked)
		assert.ErrorIs(t, tx.Cancel(), ErrTransactionLocked)
	})
}

// TestTerminalLock 终态字段与明细全部冻结
func TestTerminalLock(t *testing.T) {
	t.Run("Completed拒绝编辑", func(t *testing.T) {
		tx, _ := NewTransaction("PUR020", 1, time.Now(), "原备注", testItems())
		require.NoError(t, tx.Complete())

		assert.ErrorIs(t, tx.UpdateInfo(2, time.Now(), "改备注"), ErrTransactionLocked)
		assert.ErrorIs(t, tx.ReplaceItems([]Item{{BookID: 2, Quantity: 1, UnitPrice: 100}}), ErrTransactionLocked)
		assert.Equal(t, "原备注", tx.Note)
		assert.Len(t, tx.Items, 1)
	})

	t.Run("Cancelled拒绝编辑", func(t *testing.T) {
		tx, _ := NewTransaction("PUR021", 1, time.Now(), "", testItems())
		require.NoError(t, tx.Cancel())
		assert.ErrorIs(t, tx.UpdateInfo(2, time.Now(), "x"), ErrTransactionLocked)
	})

	t.Run("Pending可编辑", func(t *testing.T) {
		tx, _ := NewTransaction("PUR022", 1, time.Now(), "", testItems())
		require.NoError(t, tx.UpdateInfo(3, time.Now(), "补充备注"))
		assert.Equal(t, uint(3), tx.SupplierID)

		newItems := []Item{{BookID: 2, Quantity: 10, UnitPrice: 40000}}
		require.NoError(t, tx.ReplaceItems(newItems))
		assert.Equal(t, int64(400000), tx.Total())
	})
}
