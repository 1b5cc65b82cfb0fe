package storage

import (
	"fmt"
	"strconv"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
)

// File names shared by the data and backup directories.
const (
	ProductsFile     = "products.txt"
	SuppliersFile    = "suppliers.txt"
	TransactionsFile = "transactions.txt"
	UsersFile        = "users.txt"
)

// Files lists every persisted file in flush order.
var Files = []string{ProductsFile, SuppliersFile, TransactionsFile, UsersFile}

// ProductCodec maps id|name|category|description|quantity|reorder_level|price|supplier_id.
var ProductCodec = Codec[masterdata.Product]{
	Entity:    "product",
	File:      ProductsFile,
	Header:    []string{"id", "name", "category", "description", "quantity", "reorder_level", "price", "supplier_id"},
	MinFields: 8,
	Encode: func(p masterdata.Product) []string {
		return []string{
			formatID(p.ID),
			p.Name,
			p.Category,
			p.Description,
			strconv.Itoa(p.QuantityInStock),
			strconv.Itoa(p.ReorderLevel),
			strconv.FormatFloat(p.UnitPrice, 'f', 2, 64),
			formatID(p.SupplierID),
		}
	},
	Decode: func(f []string) (masterdata.Product, error) {
		var (
			p   masterdata.Product
			err error
		)
		if p.ID, err = parseID("id", f[0]); err != nil {
			return p, err
		}
		p.Name, p.Category, p.Description = f[1], f[2], f[3]
		if p.QuantityInStock, err = parseInt("quantity", f[4]); err != nil {
			return p, err
		}
		if p.ReorderLevel, err = parseInt("reorder_level", f[5]); err != nil {
			return p, err
		}
		if p.UnitPrice, err = strconv.ParseFloat(f[6], 64); err != nil {
			return p, fmt.Errorf("price %q: %w", f[6], err)
		}
		if p.SupplierID, err = parseID("supplier_id", f[7]); err != nil {
			return p, err
		}
		return p, nil
	},
}

// SupplierCodec maps supplier_id|name|contact_number|email|address.
var SupplierCodec = Codec[masterdata.Supplier]{
	Entity:    "supplier",
	File:      SuppliersFile,
	Header:    []string{"supplier_id", "name", "contact_number", "email", "address"},
	MinFields: 5,
	Encode: func(s masterdata.Supplier) []string {
		return []string{formatID(s.ID), s.Name, s.ContactNumber, s.Email, s.Address}
	},
	Decode: func(f []string) (masterdata.Supplier, error) {
		id, err := parseID("supplier_id", f[0])
		if err != nil {
			return masterdata.Supplier{}, err
		}
		return masterdata.Supplier{ID: id, Name: f[1], ContactNumber: f[2], Email: f[3], Address: f[4]}, nil
	},
}

// TransactionCodec maps transaction_id|product_id|type|quantity|date_time|notes.
// Notes may be absent.
var TransactionCodec = Codec[inventory.Transaction]{
	Entity:    "transaction",
	File:      TransactionsFile,
	Header:    []string{"transaction_id", "product_id", "type", "quantity", "date_time", "notes"},
	MinFields: 5,
	Encode: func(t inventory.Transaction) []string {
		return []string{
			formatID(t.ID),
			formatID(t.ProductID),
			string(t.Type),
			strconv.Itoa(t.Quantity),
			t.Timestamp,
			t.Notes,
		}
	},
	Decode: func(f []string) (inventory.Transaction, error) {
		var (
			t   inventory.Transaction
			err error
		)
		if t.ID, err = parseID("transaction_id", f[0]); err != nil {
			return t, err
		}
		if t.ProductID, err = parseID("product_id", f[1]); err != nil {
			return t, err
		}
		t.Type = inventory.TransactionType(f[2])
		if t.Quantity, err = parseInt("quantity", f[3]); err != nil {
			return t, err
		}
		t.Timestamp = f[4]
		if len(f) > 5 {
			t.Notes = f[5]
		}
		return t, nil
	},
}

// UserCodec maps username|password_hash|role. A missing role means STAFF.
var UserCodec = Codec[auth.User]{
	Entity:    "user",
	File:      UsersFile,
	Header:    []string{"username", "password_hash", "role"},
	MinFields: 2,
	Encode: func(u auth.User) []string {
		return []string{u.Username, u.PasswordHash, string(u.Role)}
	},
	Decode: func(f []string) (auth.User, error) {
		u := auth.User{Username: f[0], PasswordHash: f[1]}
		var raw string
		if len(f) > 2 {
			raw = f[2]
		}
		role, err := auth.ParseRole(raw)
		if err != nil {
			return u, err
		}
		u.Role = role
		return u, nil
	},
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, raw, err)
	}
	return v, nil
}

func parseInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, raw, err)
	}
	return v, nil
}
