package helper

import (
	"errors"
	"fmt"

	"game_marketplace/database"
	"game_marketplace/model"

	"gorm.io/gorm"
)

// ErrMissingContent: checkout không có cả items lẫn prodId
var ErrMissingContent = errors.New("'items' or 'prodId' must be provided")

// MissingFieldError báo đúng field thiếu trong body để client sửa
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s absent from request body", e.Field)
}

// ValidateCheckout check các field bắt buộc của payload checkout.
// Cart order cần items+subTotal, đơn dịch vụ cần prodId+price.
func ValidateCheckout(checkout model.CheckoutInfo) error {
	userFields := map[string]string{
		"fullname":        checkout.UserData.Fullname,
		"email":           checkout.UserData.Email,
		"deliveryAddress": checkout.UserData.DeliveryAddress,
		"phone":           checkout.UserData.Phone,
	}
	for _, field := range []string{"fullname", "email", "deliveryAddress", "phone"} {
		if userFields[field] == "" {
			return &MissingFieldError{Field: field}
		}
	}

	orderData := checkout.OrderData
	hasItems := len(orderData.Items) > 0
	hasProd := orderData.ProdId != nil

	if !hasItems && !hasProd {
		return ErrMissingContent
	}

	if hasItems {
		if orderData.SubTotal == nil {
			return &MissingFieldError{Field: "subTotal"}
		}
		for _, item := range orderData.Items {
			if !ValidPriceFormat(item.Price) {
				return fmt.Errorf("invalid price format for item %d", item.ProdId)
			}
		}
	} else {
		if orderData.Price == nil {
			return &MissingFieldError{Field: "price"}
		}
		if !ValidPriceFormat(*orderData.Price) {
			return errors.New("invalid price format")
		}
	}

	return nil
}

// OrderNo ghép id đơn với transaction reference của gateway
func OrderNo(orderId uint, transRef string) string {
	return fmt.Sprintf("%d-%s", orderId, transRef)
}

// LookupCollectionDoc đọc 1 doc từ collection theo tên (products,
// gamedownloads...) chỉ để enrich response, không lưu lại doc sống.
func LookupCollectionDoc(cname string, id uint) (map[string]any, error) {
	row := map[string]any{}
	err := database.DB.Table(cname).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product does not exist in %s db", cname)
		}
		return nil, err
	}
	return row, nil
}

// CreateOrder persist đơn đã thanh toán từ payload checkout.
// POD KHÔNG đi qua đây, xem CreatePodOrder.
func CreateOrder(userInfo model.UserInfo, checkout model.CheckoutInfo, payment model.PaymentInfo, collectionName string) (model.OrderInfo, error) {
	orderData := checkout.OrderData

	if orderData.ProdId != nil {
		// đơn dịch vụ / sản phẩm đơn lẻ
		product := model.ProductOrder{
			OrderTitle: collectionName,
			OrderData: model.ProductOrderData{
				OrderInfo:     *orderData.ProdId,
				PaymentStatus: "Paid",
			},
		}

		newOrder := model.Order{
			UserInfo: userInfo,
			Product:  &product,
			Payment:  &payment,
		}
		if err := database.DB.Create(&newOrder).Error; err != nil {
			return model.OrderInfo{}, err
		}

		// chỉ lấy doc để hiển thị, giá giữ theo snapshot đã submit
		productDetails := map[string]any{}
		if doc, err := LookupCollectionDoc(collectionName, *orderData.ProdId); err == nil {
			productDetails = doc
		}
		productDetails["price"] = *orderData.Price

		return model.OrderInfo{
			OrderId:        newOrder.ID,
			OrderNo:        OrderNo(newOrder.ID, payment.TransRef),
			ProductDetails: productDetails,
			Total:          payment.Amount,
		}, nil
	}

	// đơn giỏ hàng shop
	order := model.Order{
		UserInfo: userInfo,
		Items:    orderData.Items,
		Payment:  &payment,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return model.OrderInfo{}, err
	}

	return model.OrderInfo{
		OrderId:        order.ID,
		OrderNo:        OrderNo(order.ID, payment.TransRef),
		ProductDetails: orderData.Items,
		Total:          payment.Amount,
	}, nil
}
