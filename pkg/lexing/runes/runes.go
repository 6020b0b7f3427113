package runes

const (
	EOF            = 0
	BOM            = '\uFEFF'
	COLON          = ':'
	BANG           = '!'
	CARRIAGERETURN = '\r'
	LINETERMINATOR = '\n'
	TAB            = '\t'
	SPACE          = ' '
	COMMA          = ','
	HASHTAG        = '#'
	QUOTE          = '"'
	BACKSLASH      = '\\'
	DOT            = '.'
	AT             = '@'
	DOLLAR         = '$'
	PIPE           = '|'
	EQUALS         = '='
	NEGATIVESIGN   = '-'
	UNDERSCORE     = '_'

	LPAREN = '('
	RPAREN = ')'
	LBRACK = '['
	RBRACK = ']'
	LBRACE = '{'
	RBRACE = '}'
)
