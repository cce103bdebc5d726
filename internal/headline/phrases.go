package headline

var Aliases = []string{
	"Bolsa brasileira",
	"Bolsa de ações",
	"Bolsa de São Paulo",
	"Bolsa",
	"BOVESPA",
	"IBOV",
	"Ibovespa Futuro",
	"IBOVESPA",
	"Índice Bovespa",
	"Índice da bolsa",
	"Mercado brasileiro",
	"Mercado de ações",
	"Mercado",
}

var UpMovements = []string{
	"sobe",
	"acelera",
	"se recupera",
	"decola",
	"progride",
	"avança",
}

var DownMovements = []string{
	"desce",
	"desacelera",
	"cai",
	"despenca",
	"regride",
	"retrai",
}

// FlatMovements is used when the change carries no sign, ex. "0,00%".
var FlatMovements = []string{
	"fica estável",
	"se mantém",
	"oscila",
	"anda de lado",
	"não se mexe",
}

var Links = []string{
	"após jornal mostrar que",
	"após jornalista denunciar que",
	"depois de evidências de que",
	"depois de reportagem divulgar que",
	"em meio a rumores que",
	"em meio a relatos que",
	"em seguida do vazamento que",
	"em seguida de relato de que",
	"pós notícia mostrar que",
	"pouco depois de noticiado que",
}
