package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试对象是已经跑起来的API进程(本地 go run ./cmd/api 或 docker compose up),
// 通过环境变量可以改目标地址和登录账号:
//
//	BOOKSTORE_TEST_BASE_URL  默认 http://localhost:8080
//	BOOKSTORE_TEST_USERNAME  默认 admin
//	BOOKSTORE_TEST_PASSWORD  默认 admin123
//
// 服务不可达时整组测试跳过,不算失败

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

var seq uint64

// BaseURL API基础URL
func BaseURL() string {
	if v := os.Getenv("BOOKSTORE_TEST_BASE_URL"); v != "" {
		return v + "/api/v1"
	}
	return "http://localhost:8080/api/v1"
}

func pingURL() string {
	if v := os.Getenv("BOOKSTORE_TEST_BASE_URL"); v != "" {
		return v + "/ping"
	}
	return "http://localhost:8080/ping"
}

// SkipIfServerDown 服务不可达时跳过当前测试
func SkipIfServerDown(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(pingURL())
	if err != nil {
		t.Skipf("API服务不可达,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IDData 只关心自增ID的创建响应
// 基础资料接口直接返回领域实体,字段名大小写不敏感匹配即可
type IDData struct {
	ID uint
}

// BookData 图书响应数据
type BookData struct {
	ID             uint   `json:"id"`
	Code           string `json:"code"`
	Title          string `json:"title"`
	CategoryCode   string `json:"category_code"`
	TypeID         uint   `json:"type_id"`
	FieldOfStudyID uint   `json:"field_of_study_id"`
	Price          int64  `json:"price"`
	Stock          int    `json:"stock"`
}

// StockData 库存查询响应数据
type StockData struct {
	BookID uint `json:"book_id"`
	Stock  int  `json:"stock"`
}

// SalesItemData 销售明细响应数据
type SalesItemData struct {
	ItemID         uint  `json:"item_id"`
	BookID         uint  `json:"book_id"`
	Quantity       int   `json:"quantity"`
	BasePrice      int64 `json:"base_price"`
	Promotion      int64 `json:"promotion"`
	Discount       int   `json:"discount"`
	EffectivePrice int64 `json:"effective_price"`
	Subtotal       int64 `json:"subtotal"`
}

// SalesShippingData 运单响应数据
type SalesShippingData struct {
	ID           uint  `json:"ID"`
	ExpeditionID uint  `json:"ExpeditionID"`
	TotalAmount  int64 `json:"TotalAmount"`
}

// SalesPaymentData 收款响应数据
type SalesPaymentData struct {
	ID     uint  `json:"ID"`
	Amount int64 `json:"Amount"`
}

// SalesData 销售单汇总响应数据
type SalesData struct {
	TransactionID    uint                `json:"transaction_id"`
	TransactionNo    string              `json:"transaction_no"`
	PaymentType      string              `json:"payment_type"`
	Status           int                 `json:"status"`
	StatusLabel      string              `json:"status_label"`
	Items            []SalesItemData     `json:"items"`
	Shippings        []SalesShippingData `json:"shippings"`
	Payments         []SalesPaymentData  `json:"payments"`
	ItemsTotal       int64               `json:"items_total"`
	ShippingTotal    int64               `json:"shipping_total"`
	PaymentsTotal    int64               `json:"payments_total"`
	GrandTotal       int64               `json:"grand_total"`
	RemainingBalance int64               `json:"remaining_balance"`
	CanAddPayment    bool                `json:"can_add_payment"`
}

// PurchaseItemData 采购明细响应数据
type PurchaseItemData struct {
	ID        uint
	BookID    uint
	Quantity  int
	UnitPrice int64
}

// PurchaseData 采购单响应数据(实体直出,字段名大小写不敏感匹配)
type PurchaseData struct {
	ID            uint
	TransactionNo string
	SupplierID    uint
	Status        int
	Items         []PurchaseItemData
}

func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodGet, url, nil, token)
}

// Unmarshal 把响应Data解析到目标结构
func (r *Response) Unmarshal(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), "解析响应数据失败: %s", string(r.Data))
}

// UniqueName 生成唯一的测试名称
// 时间戳+进程内序号,避免同一秒内多次调用撞名
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().Unix(), atomic.AddUint64(&seq, 1))
}

// LoginTestAdmin 用测试账号登录并返回访问令牌
func LoginTestAdmin(t *testing.T) string {
	t.Helper()

	username := os.Getenv("BOOKSTORE_TEST_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("BOOKSTORE_TEST_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	resp := PostJSON(t, BaseURL()+"/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, 0, resp.Code, "登录失败(确认测试账号已建好): %s", resp.Message)

	var data LoginData
	resp.Unmarshal(t, &data)
	require.NotEmpty(t, data.AccessToken, "访问令牌不应为空")

	return data.AccessToken
}

// CreateTestCity 建测试城市并返回ID
func CreateTestCity(t *testing.T, token string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL()+"/cities", map[string]string{
		"name":     UniqueName("Kota"),
		"province": "Jawa Tengah",
	}, token)
	require.Equal(t, 0, resp.Code, "创建城市失败: %s", resp.Message)

	var data IDData
	resp.Unmarshal(t, &data)
	return data.ID
}

// CreateTestPublisher 建测试出版社并返回ID
func CreateTestPublisher(t *testing.T, token string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL()+"/publishers", map[string]interface{}{
		"name":    UniqueName("Penerbit"),
		"address": "Jl. Pemuda No. 10",
		"phone":   "0272-123456",
		"city_id": CreateTestCity(t, token),
	}, token)
	require.Equal(t, 0, resp.Code, "创建出版社失败: %s", resp.Message)

	var data IDData
	resp.Unmarshal(t, &data)
	return data.ID
}

// CreateTestExpedition 建测试快递公司并返回ID
func CreateTestExpedition(t *testing.T, token string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL()+"/expeditions", map[string]string{
		"name":  UniqueName("Ekspedisi"),
		"phone": "021-29278888",
	}, token)
	require.Equal(t, 0, resp.Code, "创建快递公司失败: %s", resp.Message)

	var data IDData
	resp.Unmarshal(t, &data)
	return data.ID
}

// CreateTestBook 上架测试图书并返回ID
// categoryCode传"LKS"时明细参与促销价/折扣,其余分类按目录价
func CreateTestBook(t *testing.T, token string, categoryCode string, price int64, stock int) uint {
	t.Helper()

	typeResp := PostJSON(t, BaseURL()+"/book-types", map[string]string{
		"name": UniqueName("Tipe"),
	}, token)
	require.Equal(t, 0, typeResp.Code, "创建图书类型失败: %s", typeResp.Message)
	var typeData IDData
	typeResp.Unmarshal(t, &typeData)

	fieldResp := PostJSON(t, BaseURL()+"/fields-of-study", map[string]string{
		"name": UniqueName("Bidang"),
	}, token)
	require.Equal(t, 0, fieldResp.Code, "创建学科领域失败: %s", fieldResp.Message)
	var fieldData IDData
	fieldResp.Unmarshal(t, &fieldData)

	resp := PostJSON(t, BaseURL()+"/books", map[string]interface{}{
		"code":              UniqueName("BK"),
		"title":             UniqueName("Buku"),
		"category_code":     categoryCode,
		"type_id":           typeData.ID,
		"field_of_study_id": fieldData.ID,
		"level":             "7",
		"curriculum":        "Merdeka",
		"brand":             "Integrasi",
		"price":             price,
		"purchasing_price":  price * 6 / 10,
		"stock":             stock,
	}, token)
	require.Equal(t, 0, resp.Code, "图书上架失败: %s", resp.Message)

	var data BookData
	resp.Unmarshal(t, &data)
	require.NotZero(t, data.ID, "图书ID应该大于0")

	return data.ID
}

// CreateTestAssociate 录入测试业务员并返回ID
// paymentType: T=现款 K=赊销
func CreateTestAssociate(t *testing.T, token string, paymentType string, discount int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL()+"/associates", map[string]interface{}{
		"name":         UniqueName("Sales"),
		"address":      "Jl. Merdeka No. 5",
		"phone":        "081234567890",
		"city_id":      CreateTestCity(t, token),
		"discount":     discount,
		"payment_type": paymentType,
	}, token)
	require.Equal(t, 0, resp.Code, "录入业务员失败: %s", resp.Message)

	var data IDData
	resp.Unmarshal(t, &data)
	return data.ID
}

// GetBookStock 查询图书当前库存
func GetBookStock(t *testing.T, token string, bookID uint) int {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d/stock", BaseURL(), bookID), token)
	require.Equal(t, 0, resp.Code, "查询库存失败: %s", resp.Message)

	var data StockData
	resp.Unmarshal(t, &data)
	return data.Stock
}
