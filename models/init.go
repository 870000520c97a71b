package models

import "github.com/vanbenpham/forunime-backend/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Thread{})
	db.Instance.AutoMigrate(&Post{})
	db.Instance.AutoMigrate(&Review{})
	db.Instance.AutoMigrate(&Comment{})
	db.Instance.AutoMigrate(&Group{})
	db.Instance.AutoMigrate(&GroupUser{})
	db.Instance.AutoMigrate(&Message{})
}
