package sales

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
)

// 用例测试的内存假实现:不依赖数据库,
// 事务退化为直接执行(原子性由领域/持久层测试覆盖)

type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookRepo) FindByCode(ctx context.Context, code string) (*book.Book, error) {
	for _, b := range r.books {
		if b.Code == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

func (r *fakeBookRepo) stockOf(id uint) int {
	return r.books[id].Stock
}

type fakeSalesRepo struct {
	transactions map[uint]*sales.Transaction
	nextID       uint
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{transactions: make(map[uint]*sales.Transaction), nextID: 1}
}

func (r *fakeSalesRepo) Create(ctx context.Context, tx *sales.Transaction) error {
	tx.ID = r.nextID
	r.nextID++
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakeSalesRepo) FindByID(ctx context.Context, id uint) (*sales.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, sales.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *fakeSalesRepo) FindByNo(ctx context.Context, transactionNo string) (*sales.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.TransactionNo == transactionNo {
			return tx, nil
		}
	}
	return nil, sales.ErrTransactionNotFound
}

func (r *fakeSalesRepo) Update(ctx context.Context, tx *sales.Transaction) error {
	if _, ok := r.transactions[tx.ID]; !ok {
		return sales.ErrTransactionNotFound
	}
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakeSalesRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.transactions[id]; !ok {
		return sales.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *fakeSalesRepo) List(ctx context.Context, params sales.ListParams) ([]*sales.Transaction, int64, error) {
	var result []*sales.Transaction
	for _, tx := range r.transactions {
		result = append(result, tx)
	}
	return result, int64(len(result)), nil
}

type fakeAssociateRepo struct {
	associates map[uint]*associate.SalesAssociate
}

func newFakeAssociateRepo(list ...*associate.SalesAssociate) *fakeAssociateRepo {
	r := &fakeAssociateRepo{associates: make(map[uint]*associate.SalesAssociate)}
	for _, a := range list {
		r.associates[a.ID] = a
	}
	return r
}

func (r *fakeAssociateRepo) Create(ctx context.Context, a *associate.SalesAssociate) error {
	r.associates[a.ID] = a
	return nil
}

func (r *fakeAssociateRepo) FindByID(ctx context.Context, id uint) (*associate.SalesAssociate, error) {
	a, ok := r.associates[id]
	if !ok {
		return nil, associate.ErrAssociateNotFound
	}
	return a, nil
}

func (r *fakeAssociateRepo) Update(ctx context.Context, a *associate.SalesAssociate) error {
	r.associates[a.ID] = a
	return nil
}

func (r *fakeAssociateRepo) Delete(ctx context.Context, id uint) error {
	delete(r.associates, id)
	return nil
}

func (r *fakeAssociateRepo) List(ctx context.Context, params associate.ListParams) ([]*associate.SalesAssociate, int64, error) {
	return nil, 0, nil
}

type fakeExpeditionRepo struct {
	expeditions map[uint]*master.Expedition
}

func newFakeExpeditionRepo(list ...*master.Expedition) *fakeExpeditionRepo {
	r := &fakeExpeditionRepo{expeditions: make(map[uint]*master.Expedition)}
	for _, e := range list {
		r.expeditions[e.ID] = e
	}
	return r
}

func (r *fakeExpeditionRepo) Create(ctx context.Context, e *master.Expedition) error {
	r.expeditions[e.ID] = e
	return nil
}

func (r *fakeExpeditionRepo) FindByID(ctx context.Context, id uint) (*master.Expedition, error) {
	e, ok := r.expeditions[id]
	if !ok {
		return nil, master.ErrNotFound
	}
	return e, nil
}

func (r *fakeExpeditionRepo) Update(ctx context.Context, e *master.Expedition) error {
	r.expeditions[e.ID] = e
	return nil
}

func (r *fakeExpeditionRepo) Delete(ctx context.Context, id uint) error {
	delete(r.expeditions, id)
	return nil
}

func (r *fakeExpeditionRepo) List(ctx context.Context, params master.ListParams) ([]*master.Expedition, int64, error) {
	return nil, 0, nil
}
