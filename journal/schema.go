package journal

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT NOT NULL,
	time DATETIME NOT NULL,
	kind TEXT NOT NULL,
	amount REAL NOT NULL,
	balance REAL NOT NULL,
	note TEXT
);

CREATE TABLE IF NOT EXISTS orders (
	id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL,
	limit_price REAL,
	tif TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	closed_at DATETIME,
	note TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_time ON transactions(time);
CREATE INDEX IF NOT EXISTS idx_orders_id ON orders(id);
CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol);
`
