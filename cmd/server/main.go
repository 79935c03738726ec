package main

import "authgate/internal/app"

// @title           Authgate API
// @version         1.0
// @description     Сервис учётных записей: регистрация, вход, OTP-верификация почты и сброс пароля.
// @BasePath        /
func main() {
	app.Run()
}
