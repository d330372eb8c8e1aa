package seed

import (
	"github.com/mdouchement/anylist/internal/model"
	"github.com/mdouchement/anylist/internal/server/service"
)

type fixtureUser struct {
	FullName string
	Email    string
	Password string
	Roles    []string
}

var fixtureUsers = []fixtureUser{
	{
		FullName: "Georgette Abitbol",
		Email:    "georgette@nowhere.lan",
		Password: "classe.4merica",
		Roles:    []string{model.RoleMember, model.RoleAdmin},
	},
	{
		FullName: "George Abitbol",
		Email:    "george@nowhere.lan",
		Password: "monde.de.merde",
	},
	{
		FullName: "Hugues Capet",
		Email:    "hugues@nowhere.lan",
		Password: "roi.des.francs",
	},
}

var fixtureItems = []service.CreateItemParams{
	{Name: "Red Apple", QuantityUnits: "unit"},
	{Name: "Green Pear", QuantityUnits: "unit"},
	{Name: "Whole Milk", QuantityUnits: "L"},
	{Name: "Flour", QuantityUnits: "kg"},
	{Name: "Butter", QuantityUnits: "g"},
	{Name: "Olive Oil", QuantityUnits: "cL"},
	{Name: "Coffee Beans", QuantityUnits: "g"},
	{Name: "Sparkling Water", QuantityUnits: "bottle"},
	{Name: "Brown Rice", QuantityUnits: "kg"},
}

var fixtureLists = []string{
	"Groceries",
	"Hardware Store",
	"Week-end Trip",
}
