package associate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID   map[uint]*SalesAssociate
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uint]*SalesAssociate), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, a *SalesAssociate) error {
	a.ID = r.nextID
	r.nextID++
	r.byID[a.ID] = a
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*SalesAssociate, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrAssociateNotFound
	}
	return a, nil
}

func (r *fakeRepo) Update(_ context.Context, a *SalesAssociate) error {
	r.byID[a.ID] = a
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ ListParams) ([]*SalesAssociate, int64, error) {
	list := make([]*SalesAssociate, 0, len(r.byID))
	for _, a := range r.byID {
		list = append(list, a)
	}
	return list, int64(len(list)), nil
}

func TestCreateAssociate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常录入并去除首尾空格", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		a, err := svc.CreateAssociate(ctx, "  Budi Santoso  ", "Jl. Merdeka 5", "0812", 1, 10, "K")
		require.NoError(t, err)
		assert.NotZero(t, a.ID)
		assert.Equal(t, "Budi Santoso", a.Name)
		assert.Equal(t, 10, a.Discount)
		assert.Equal(t, "K", a.PaymentType)
	})

	t.Run("姓名为空拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.CreateAssociate(ctx, "   ", "", "", 0, 0, "T")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("折扣越界拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.CreateAssociate(ctx, "Budi", "", "", 0, 101, "T")
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = svc.CreateAssociate(ctx, "Budi", "", "", 0, -1, "T")
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("付款方式只允许T或K", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.CreateAssociate(ctx, "Budi", "", "", 0, 0, "X")
		assert.ErrorIs(t, err, ErrInvalidPaymentType)
	})
}

func TestUpdateAssociate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	a, err := svc.CreateAssociate(ctx, "Budi", "Alamat Lama", "0812", 1, 5, "T")
	require.NoError(t, err)

	t.Run("正常修改", func(t *testing.T) {
		err := svc.UpdateAssociate(ctx, a.ID, "Budi Santoso", "Alamat Baru", "0813", 2, 25, "K")
		require.NoError(t, err)

		updated, err := svc.GetAssociate(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Budi Santoso", updated.Name)
		assert.Equal(t, 25, updated.Discount)
		assert.Equal(t, "K", updated.PaymentType)
	})

	t.Run("校验先于查库", func(t *testing.T) {
		err := svc.UpdateAssociate(ctx, a.ID, "", "", "", 0, 0, "T")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("业务员不存在", func(t *testing.T) {
		err := svc.UpdateAssociate(ctx, 999, "Budi", "", "", 0, 0, "T")
		assert.ErrorIs(t, err, ErrAssociateNotFound)
	})
}

func TestDeleteAssociate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	a, err := svc.CreateAssociate(ctx, "Budi", "", "", 0, 0, "T")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAssociate(ctx, a.ID))

	_, err = svc.GetAssociate(ctx, a.ID)
	assert.ErrorIs(t, err, ErrAssociateNotFound)

	err = svc.DeleteAssociate(ctx, a.ID)
	assert.ErrorIs(t, err, ErrAssociateNotFound)
}
