package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL crea las tablas si no existen. No hay sistema de migraciones
// versionado: el script es idempotente y se ejecuta en cada arranque.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS categorias (
    id_categoria    UUID PRIMARY KEY,
    nombre          VARCHAR(60) NOT NULL UNIQUE,
    tipo            VARCHAR(20) NOT NULL CHECK (tipo IN ('MATERIAL', 'SERVICIO')),
    descripcion     TEXT NOT NULL DEFAULT '',
    activo          BOOLEAN NOT NULL DEFAULT TRUE,
    fecha_creacion  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS productos (
    id_producto         UUID PRIMARY KEY,
    id_categoria        UUID NOT NULL REFERENCES categorias(id_categoria) ON DELETE RESTRICT,
    nombre              VARCHAR(60) NOT NULL,
    descripcion         TEXT NOT NULL DEFAULT '',
    stock               INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    stock_minimo        INTEGER NOT NULL DEFAULT 0,
    costo               NUMERIC(10,4) NOT NULL DEFAULT 0,
    precio              NUMERIC(10,2) NOT NULL DEFAULT 0,
    tasa_impuesto       NUMERIC(5,2) NOT NULL DEFAULT 0,
    activo              BOOLEAN NOT NULL DEFAULT TRUE,
    fecha_creacion      TIMESTAMPTZ NOT NULL DEFAULT now(),
    fecha_modificacion  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clientes (
    id_cliente      UUID PRIMARY KEY,
    nombre          VARCHAR(60) NOT NULL UNIQUE,
    ruc             VARCHAR(20),
    dv              VARCHAR(2) NOT NULL DEFAULT '',
    telefono        VARCHAR(20) NOT NULL DEFAULT '',
    email           VARCHAR(100) NOT NULL DEFAULT '',
    direccion       TEXT NOT NULL DEFAULT '',
    activo          BOOLEAN NOT NULL DEFAULT TRUE,
    fecha_creacion  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_clientes_ruc ON clientes(ruc) WHERE ruc IS NOT NULL AND ruc <> '';

CREATE TABLE IF NOT EXISTS usuarios (
    id_usuario      UUID PRIMARY KEY,
    nombre_usuario  VARCHAR(30) NOT NULL UNIQUE,
    password_hash   VARCHAR(255) NOT NULL,
    rol             VARCHAR(20) NOT NULL CHECK (rol IN ('ADMIN', 'VENDEDOR')),
    activo          BOOLEAN NOT NULL DEFAULT TRUE,
    fecha_creacion  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ventas (
    id_venta        UUID PRIMARY KEY,
    numero_factura  VARCHAR(20) UNIQUE,
    fecha_venta     TIMESTAMPTZ NOT NULL DEFAULT now(),
    id_cliente      UUID REFERENCES clientes(id_cliente) ON DELETE SET NULL,
    subtotal        NUMERIC(10,2) NOT NULL DEFAULT 0,
    impuestos       NUMERIC(10,2) NOT NULL DEFAULT 0,
    total           NUMERIC(10,2) NOT NULL DEFAULT 0,
    responsable     VARCHAR(60) NOT NULL,
    estado          VARCHAR(20) NOT NULL DEFAULT 'COMPLETADA',
    observaciones   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS detalle_ventas (
    id_detalle       UUID PRIMARY KEY,
    id_venta         UUID NOT NULL REFERENCES ventas(id_venta) ON DELETE CASCADE,
    id_producto      UUID NOT NULL REFERENCES productos(id_producto) ON DELETE RESTRICT,
    cantidad         INTEGER NOT NULL CHECK (cantidad > 0),
    precio_unitario  NUMERIC(10,2) NOT NULL,
    subtotal_item    NUMERIC(10,2) NOT NULL,
    impuesto_item    NUMERIC(10,2) NOT NULL DEFAULT 0,
    descuento        NUMERIC(10,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS movimientos (
    id_movimiento      UUID PRIMARY KEY,
    id_producto        UUID NOT NULL REFERENCES productos(id_producto) ON DELETE RESTRICT,
    tipo_movimiento    VARCHAR(20) NOT NULL CHECK (tipo_movimiento IN ('ENTRADA', 'VENTA', 'AJUSTE')),
    cantidad           INTEGER NOT NULL,
    cantidad_anterior  INTEGER NOT NULL DEFAULT 0,
    cantidad_nueva     INTEGER NOT NULL DEFAULT 0,
    fecha_movimiento   TIMESTAMPTZ NOT NULL DEFAULT now(),
    responsable        VARCHAR(60) NOT NULL,
    id_venta           UUID REFERENCES ventas(id_venta) ON DELETE SET NULL,
    observaciones      TEXT NOT NULL DEFAULT '',
    costo_unitario     NUMERIC(10,4)
);

CREATE TABLE IF NOT EXISTS company_config (
    id          INTEGER PRIMARY KEY,
    nombre      VARCHAR(100) NOT NULL,
    ruc         VARCHAR(20) NOT NULL DEFAULT '',
    direccion   TEXT NOT NULL DEFAULT '',
    telefono    VARCHAR(20) NOT NULL DEFAULT '',
    email       VARCHAR(100) NOT NULL DEFAULT '',
    logo_path   VARCHAR(255) NOT NULL DEFAULT '',
    itbms_rate  NUMERIC(5,2) NOT NULL DEFAULT 7.00,
    moneda      VARCHAR(10) NOT NULL DEFAULT 'USD',
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ticket_numbering (
    ticket_type  VARCHAR(20) PRIMARY KEY CHECK (ticket_type IN ('VENTA', 'ENTRADA', 'AJUSTE')),
    last_number  INTEGER NOT NULL DEFAULT 0,
    prefix       VARCHAR(10) NOT NULL DEFAULT '',
    suffix       VARCHAR(10) NOT NULL DEFAULT '',
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tickets (
    id_ticket      UUID PRIMARY KEY,
    ticket_number  VARCHAR(50) NOT NULL UNIQUE,
    ticket_type    VARCHAR(20) NOT NULL CHECK (ticket_type IN ('VENTA', 'ENTRADA', 'AJUSTE')),
    id_venta       UUID REFERENCES ventas(id_venta) ON DELETE SET NULL,
    id_movimiento  UUID REFERENCES movimientos(id_movimiento) ON DELETE SET NULL,
    generated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    generated_by   VARCHAR(60) NOT NULL,
    pdf_path       VARCHAR(255) NOT NULL DEFAULT '',
    reprint_count  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_productos_categoria ON productos(id_categoria);
CREATE INDEX IF NOT EXISTS idx_productos_activo ON productos(activo);
CREATE INDEX IF NOT EXISTS idx_ventas_fecha ON ventas(fecha_venta);
CREATE INDEX IF NOT EXISTS idx_ventas_cliente ON ventas(id_cliente);
CREATE INDEX IF NOT EXISTS idx_detalle_venta ON detalle_ventas(id_venta);
CREATE INDEX IF NOT EXISTS idx_detalle_producto ON detalle_ventas(id_producto);
CREATE INDEX IF NOT EXISTS idx_movimientos_producto ON movimientos(id_producto);
CREATE INDEX IF NOT EXISTS idx_movimientos_fecha ON movimientos(fecha_movimiento);
CREATE INDEX IF NOT EXISTS idx_tickets_type ON tickets(ticket_type);
CREATE INDEX IF NOT EXISTS idx_tickets_generated_at ON tickets(generated_at);
`

// seedDDL filas base: secuencias de tickets y configuración de empresa por defecto.
const seedDDL = `
INSERT INTO ticket_numbering (ticket_type, prefix)
VALUES ('VENTA', 'V-'), ('ENTRADA', 'E-'), ('AJUSTE', 'A-')
ON CONFLICT (ticket_type) DO NOTHING;

INSERT INTO company_config (id, nombre, ruc, direccion, telefono, email, itbms_rate, moneda)
VALUES (1, 'Copy Point S.A.', '888-888-8888', 'Las Lajas, Las Cumbres, Panamá', '6666-6666', 'copy.point@gmail.com', 7.00, 'USD')
ON CONFLICT (id) DO NOTHING;
`

// EnsureSchema aplica el DDL idempotente y las filas semilla.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	if _, err := pool.Exec(ctx, seedDDL); err != nil {
		return fmt.Errorf("sembrar datos base: %w", err)
	}
	return nil
}
