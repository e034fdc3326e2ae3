package main

import (
	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/auth"
	"github.com/bekzatm/tezdeliver/internal/cart"
	"github.com/bekzatm/tezdeliver/internal/chat"
	"github.com/bekzatm/tezdeliver/internal/httpx"
	"github.com/bekzatm/tezdeliver/internal/media"
	"github.com/bekzatm/tezdeliver/internal/order"
	"github.com/bekzatm/tezdeliver/internal/store"
	"github.com/bekzatm/tezdeliver/internal/user"
)

type deps struct {
	authSvc *auth.Service
	tokens  *auth.Tokens
	users   user.Repository
	stores  storeRepos
	carts   cart.Repository
	orders  orderRepos
	chats   chat.Repository
	media   *media.Storage
}

type storeRepos interface {
	store.StoreRepository
	store.CategoryRepository
	store.ProductRepository
	store.ReviewRepository
}

type orderRepos interface {
	order.Repository
	order.CourierRepository
	order.CourierReviewRepository
}

func registerRoutes(r *gin.Engine, d deps) {
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	r.POST("/register", registerHandler(d.authSvc))
	r.POST("/login", loginHandler(d.authSvc))
	r.POST("/logout", logoutHandler(d.authSvc))

	r.Static("/uploads", d.media.Dir())

	api := r.Group("/", httpx.Auth(d.tokens))

	api.GET("/store", listStoresHandler(d.stores))
	api.GET("/store/:id", getStoreHandler(d.stores))
	api.POST("/store/create", createStoreHandler(d.stores))
	api.PUT("/store/edit/:id", updateStoreHandler(d.stores))
	api.DELETE("/store/edit/:id", deleteStoreHandler(d.stores))

	api.GET("/category", listCategoriesHandler(d.stores))
	api.GET("/category/:id", getCategoryHandler(d.stores))
	api.POST("/category", createCategoryHandler(d.stores))
	api.PUT("/category/:id", updateCategoryHandler(d.stores))
	api.DELETE("/category/:id", deleteCategoryHandler(d.stores))

	api.GET("/product", listProductsHandler(d.stores))
	api.GET("/product/:id", getProductHandler(d.stores))
	api.POST("/product", createProductHandler(d.stores))
	api.PUT("/product/:id", updateProductHandler(d.stores))
	api.DELETE("/product/:id", deleteProductHandler(d.stores))

	api.GET("/combo", listCombosHandler(d.stores))
	api.POST("/combo", createComboHandler(d.stores))
	api.DELETE("/combo/:id", deleteComboHandler(d.stores))

	api.GET("/contact", listContactsHandler(d.stores))
	api.POST("/contact", createContactHandler(d.stores))
	api.DELETE("/contact/:id", deleteContactHandler(d.stores))

	api.GET("/store_review", listStoreReviewsHandler(d.stores))
	api.POST("/store_review", createStoreReviewHandler(d.stores))
	api.PUT("/store_review/:id", mutateStoreReviewHandler())
	api.DELETE("/store_review/:id", mutateStoreReviewHandler())

	api.GET("/user", listUsersHandler(d.users))
	api.GET("/user/:id", getUserHandler(d.users))
	api.PUT("/user/:id", updateUserHandler(d.users))
	api.DELETE("/user/:id", deleteUserHandler(d.users))

	api.GET("/cart", getCartHandler(d.carts))
	api.POST("/cart_item", addCartItemHandler(d.carts, d.stores))
	api.PUT("/cart_item/:id", updateCartItemHandler(d.carts))
	api.DELETE("/cart_item/:id", deleteCartItemHandler(d.carts))

	api.GET("/order", listOrdersHandler(d.orders, d.carts))
	api.GET("/order/:id", getOrderHandler(d.orders, d.carts))
	api.POST("/order", createOrderHandler(d.orders, d.carts))
	api.PUT("/order/:id", updateOrderHandler(d.orders))
	api.DELETE("/order/:id", deleteOrderHandler(d.orders))

	api.GET("/courier", listCouriersHandler(d.orders))
	api.GET("/courier/:id", getCourierHandler(d.orders))
	api.POST("/courier", createCourierHandler(d.orders))
	api.PUT("/courier/:id", updateCourierHandler(d.orders))
	api.DELETE("/courier/:id", deleteCourierHandler(d.orders))

	api.GET("/courier_review", listCourierReviewsHandler(d.orders))
	api.POST("/courier_review", createCourierReviewHandler(d.orders))
	api.PUT("/courier_review/:id", mutateCourierReviewHandler())
	api.DELETE("/courier_review/:id", mutateCourierReviewHandler())

	api.GET("/chat", listChatsHandler(d.chats))
	api.POST("/chat", createChatHandler(d.chats))
	api.GET("/chat/:id/message", listMessagesHandler(d.chats))
	api.POST("/chat/:id/message", postMessageHandler(d.chats))

	api.POST("/upload", uploadHandler(d.media))
}
