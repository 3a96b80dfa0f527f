package service

import "github.com/m-mizutani/cflogs/internal"

var logger = internal.Logger
