package purchase

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
)

// 用例测试的内存假实现,约定与sales包的测试一致

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

type fakePurchaseRepo struct {
	transactions map[uint]*purchase.Transaction
	nextID       uint
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{transactions: make(map[uint]*purchase.Transaction), nextID: 1}
}

func (r *fakePurchaseRepo) Create(ctx context.Context, tx *purchase.Transaction) error {
	tx.ID = r.nextID
	r.nextID++
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakePurchaseRepo) FindByID(ctx context.Context, id uint) (*purchase.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, purchase.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *fakePurchaseRepo) FindByNo(ctx context.Context, transactionNo string) (*purchase.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.TransactionNo == transactionNo {
			return tx, nil
		}
	}
	return nil, purchase.ErrTransactionNotFound
}

func (r *fakePurchaseRepo) Update(ctx context.Context, tx *purchase.Transaction) error {
	if _, ok := r.transactions[tx.ID]; !ok {
		return purchase.ErrTransactionNotFound
	}
	r.transactions[tx.ID] = tx
	return nil
}

func (r *fakePurchaseRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.transactions[id]; !ok {
		return purchase.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *fakePurchaseRepo) List(ctx context.Context, params purchase.ListParams) ([]*purchase.Transaction, int64, error) {
	var result []*purchase.Transaction
	for _, tx := range r.transactions {
		result = append(result, tx)
	}
	return result, int64(len(result)), nil
}

type fakePublisherRepo struct {
	publishers map[uint]*master.Publisher
}

func newFakePublisherRepo(list ...*master.Publisher) *fakePublisherRepo {
	r := &fakePublisherRepo{publishers: make(map[uint]*master.Publisher)}
	for _, p := range list {
		r.publishers[p.ID] = p
	}
	return r
}

func (r *fakePublisherRepo) Create(ctx context.Context, p *master.Publisher) error {
	r.publishers[p.ID] = p
	return nil
}

func (r *fakePublisherRepo) FindByID(ctx context.Context, id uint) (*master.Publisher, error) {
	p, ok := r.publishers[id]
	if !ok {
		return nil, master.ErrNotFound
	}
	return p, nil
}

func (r *fakePublisherRepo) Update(ctx context.Context, p *master.Publisher) error {
	r.publishers[p.ID] = p
	return nil
}

func (r *fakePublisherRepo) Delete(ctx context.Context, id uint) error {
	delete(r.publishers, id)
	return nil
}

func (r *fakePublisherRepo) List(ctx context.Context, params master.ListParams) ([]*master.Publisher, int64, error) {
	return nil, 0, nil
}
