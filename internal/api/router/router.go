package router

import (
	"sabor-go/internal/api/handler"
	"sabor-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
	recipeHandler *handler.RecipeHandler,
	shoppingListHandler *handler.ShoppingListHandler,
	searchHandler *handler.SearchHandler,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.GET("/me", authHandler.Me)
			authRequired.POST("/password", authHandler.ChangePassword)
		}
	}

	// --- 用户与订阅模块 ---
	users := v1.Group("/users")
	{
		usersPublic := users.Group("", middleware.AuthOptional())
		{
			usersPublic.GET("", userHandler.List)
			usersPublic.GET("/:id", userHandler.GetProfile)
		}

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.PUT("/me/avatar", userHandler.SetAvatar)
			usersAuth.DELETE("/me/avatar", userHandler.RemoveAvatar)

			usersAuth.GET("/subscriptions", userHandler.ListSubscriptions)
			usersAuth.POST("/:id/subscribe", userHandler.Subscribe)
			usersAuth.DELETE("/:id/subscribe", userHandler.Unsubscribe)
		}
	}

	// --- 标签模块 ---
	tags := v1.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.GET("/:id", tagHandler.Get)

		// 管理员接口
		admin := tags.Group("", middleware.AuthRequired(), adminMiddleware)
		{
			admin.POST("", tagHandler.Create)
		}
	}

	// --- 食材模块 ---
	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:id", ingredientHandler.Get)

		admin := ingredients.Group("", middleware.AuthRequired(), adminMiddleware)
		{
			admin.POST("", ingredientHandler.Create)
		}
	}

	// --- 菜谱模块 ---
	recipes := v1.Group("/recipes")
	{
		recipesPublic := recipes.Group("", middleware.AuthOptional())
		{
			recipesPublic.GET("", recipeHandler.List)
			recipesPublic.GET("/:id", recipeHandler.Get)
		}

		recipesAuth := recipes.Group("", middleware.AuthRequired())
		{
			recipesAuth.POST("", recipeHandler.Create)
			recipesAuth.PUT("/:id", recipeHandler.Update)
			recipesAuth.DELETE("/:id", recipeHandler.Delete)

			recipesAuth.POST("/:id/favorite", recipeHandler.Favorite)
			recipesAuth.DELETE("/:id/favorite", recipeHandler.Unfavorite)
			recipesAuth.POST("/:id/shopping_cart", recipeHandler.AddToCart)
			recipesAuth.DELETE("/:id/shopping_cart", recipeHandler.RemoveFromCart)

			recipesAuth.GET("/shopping_list", shoppingListHandler.Preview)
			recipesAuth.GET("/download_shopping_cart", shoppingListHandler.Download)
		}
	}

	// --- 搜索模块 ---
	search := v1.Group("/search", middleware.AuthOptional())
	{
		search.GET("/recipes", searchHandler.SearchRecipes)
	}
}
